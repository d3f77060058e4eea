package memory

import (
	"context"
	"testing"

	"laza-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGateway_SeedKeepsInsertionOrder(t *testing.T) {
	gw := NewCatalogGateway()
	require.NoError(t, gw.Seed(context.Background(), SeedItems...))

	items, err := gw.List(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "T-shirt", items[0].Name)
	assert.Equal(t, "Jeans", items[1].Name)
	assert.Equal(t, "Dress", items[2].Name)
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
	}
}

func TestCatalogGateway_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	gw := NewCatalogGateway()

	created, err := gw.Create(ctx, domain.ItemFields{Name: "Hat", Price: 15, Image: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := gw.Update(ctx, created.ID, domain.ItemFields{Name: "Cap", Price: 12, Image: "c"})
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogItem{ID: created.ID, Name: "Cap", Price: 12, Image: "c"}, updated)

	require.NoError(t, gw.Delete(ctx, created.ID))
	items, err := gw.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Deleting again is not an error.
	assert.NoError(t, gw.Delete(ctx, created.ID))
}

func TestCatalogGateway_UpdateMissing(t *testing.T) {
	_, err := NewCatalogGateway().Update(context.Background(), "missing", domain.ItemFields{Name: "x", Image: "i"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogGateway_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCatalogGateway().List(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
