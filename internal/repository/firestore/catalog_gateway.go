package fsrepo

import (
	"context"
	"fmt"

	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// productDoc is the document shape of the catalog collection.
type productDoc struct {
	Name  string  `firestore:"name"`
	Price float64 `firestore:"price"`
	Image string  `firestore:"image"`
}

// CatalogGateway keeps one document per catalog item; the document id is the item id.
type CatalogGateway struct {
	client     *firestore.Client
	collection string
}

func NewCatalogGateway(client *firestore.Client, collection string) *CatalogGateway {
	return &CatalogGateway{client: client, collection: collection}
}

func (g *CatalogGateway) col() *firestore.CollectionRef {
	return g.client.Collection(g.collection)
}

func (g *CatalogGateway) List(ctx context.Context) ([]domain.CatalogItem, error) {
	iter := g.col().Documents(ctx)
	defer iter.Stop()

	items := make([]domain.CatalogItem, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d productDoc
		if err := doc.DataTo(&d); err != nil {
			logger.Warn().Err(err).Str("doc_id", doc.Ref.ID).Msg("Skipping undecodable catalog document")
			continue
		}
		items = append(items, toItem(doc.Ref.ID, d))
	}
	return items, nil
}

func (g *CatalogGateway) Create(ctx context.Context, fields domain.ItemFields) (domain.CatalogItem, error) {
	d := toDoc(fields)
	ref, _, err := g.col().Add(ctx, d)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	return toItem(ref.ID, d), nil
}

// Update overwrites every field; it fails if the document no longer exists.
func (g *CatalogGateway) Update(ctx context.Context, id string, fields domain.ItemFields) (domain.CatalogItem, error) {
	d := toDoc(fields)
	_, err := g.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: d.Name},
		{Path: "price", Value: d.Price},
		{Path: "image", Value: d.Image},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.CatalogItem{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
		}
		return domain.CatalogItem{}, err
	}
	return toItem(id, d), nil
}

func (g *CatalogGateway) Delete(ctx context.Context, id string) error {
	_, err := g.col().Doc(id).Delete(ctx)
	return err
}

func toDoc(f domain.ItemFields) productDoc {
	return productDoc{Name: f.Name, Price: f.Price, Image: f.Image}
}

func toItem(id string, d productDoc) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: d.Name, Price: d.Price, Image: d.Image}
}
