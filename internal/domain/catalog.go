package domain

import (
	"context"
	"math"
	"time"
)

// ValidPrice reports whether p can be a catalog price: finite and not negative.
func ValidPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 1)
}

// CatalogItem is a product as known to the remote catalog.
// ID is assigned by the remote store and is never generated locally.
type CatalogItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// ItemFields is the full-field payload sent to the gateway on create and update.
type ItemFields struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CatalogMirror is an immutable, ordered copy of the remote catalog taken at RefreshedAt.
// A mirror is never modified after it has been built; refresh publishes a new one.
type CatalogMirror struct {
	items       []CatalogItem
	index       map[string]int
	RefreshedAt time.Time
}

// NewCatalogMirror builds a mirror preserving the order of items.
func NewCatalogMirror(items []CatalogItem, refreshedAt time.Time) *CatalogMirror {
	m := &CatalogMirror{
		items:       make([]CatalogItem, len(items)),
		index:       make(map[string]int, len(items)),
		RefreshedAt: refreshedAt,
	}
	copy(m.items, items)
	for i, it := range m.items {
		if _, dup := m.index[it.ID]; !dup {
			m.index[it.ID] = i
		}
	}
	return m
}

// EmptyMirror is the mirror held before the first refresh.
func EmptyMirror() *CatalogMirror {
	return NewCatalogMirror(nil, time.Time{})
}

// Items returns a copy of the mirrored items in remote list order.
func (m *CatalogMirror) Items() []CatalogItem {
	out := make([]CatalogItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *CatalogMirror) Find(id string) (CatalogItem, bool) {
	i, ok := m.index[id]
	if !ok {
		return CatalogItem{}, false
	}
	return m.items[i], true
}

func (m *CatalogMirror) Contains(id string) bool {
	_, ok := m.index[id]
	return ok
}

func (m *CatalogMirror) Len() int {
	return len(m.items)
}

// --- Interfaces ---

// CatalogGateway is the remote document store holding the catalog.
type CatalogGateway interface {
	List(ctx context.Context) ([]CatalogItem, error)
	Create(ctx context.Context, fields ItemFields) (CatalogItem, error)
	Update(ctx context.Context, id string, fields ItemFields) (CatalogItem, error)
	Delete(ctx context.Context, id string) error
}

// Purger is implemented by any owner of local state that references catalog ids.
type Purger interface {
	Purge(itemID string)
}
