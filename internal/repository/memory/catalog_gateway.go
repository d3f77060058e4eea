package memory

import (
	"context"
	"fmt"
	"sync"

	"laza-storefront/internal/domain"

	"github.com/google/uuid"
)

// CatalogGateway is an in-process document store used for local development.
// Documents are listed in insertion order.
type CatalogGateway struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]domain.ItemFields
}

func NewCatalogGateway() *CatalogGateway {
	return &CatalogGateway{docs: make(map[string]domain.ItemFields)}
}

// SeedItems are the sample clothes shown before an admin adds anything.
var SeedItems = []domain.ItemFields{
	{Name: "T-shirt", Price: 20, Image: "https://via.placeholder.com/150"},
	{Name: "Jeans", Price: 30, Image: "https://via.placeholder.com/150"},
	{Name: "Dress", Price: 40, Image: "https://via.placeholder.com/150"},
}

// Seed inserts fields as new documents.
func (g *CatalogGateway) Seed(ctx context.Context, fields ...domain.ItemFields) error {
	for _, f := range fields {
		if _, err := g.Create(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (g *CatalogGateway) List(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	items := make([]domain.CatalogItem, 0, len(g.order))
	for _, id := range g.order {
		items = append(items, toItem(id, g.docs[id]))
	}
	return items, nil
}

func (g *CatalogGateway) Create(ctx context.Context, fields domain.ItemFields) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.NewString()
	g.docs[id] = fields
	g.order = append(g.order, id)
	return toItem(id, fields), nil
}

func (g *CatalogGateway) Update(ctx context.Context, id string, fields domain.ItemFields) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.docs[id]; !ok {
		return domain.CatalogItem{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	g.docs[id] = fields
	return toItem(id, fields), nil
}

// Delete is idempotent, like a document store delete.
func (g *CatalogGateway) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.docs[id]; !ok {
		return nil
	}
	delete(g.docs, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

func toItem(id string, f domain.ItemFields) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: f.Name, Price: f.Price, Image: f.Image}
}
