package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"laza-storefront/internal/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	events []domain.CatalogEvent
	err    error
}

func (f *fakeApplier) ApplyRemoteEvent(ctx context.Context, event domain.CatalogEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func TestDecodeCatalogEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(domain.CatalogEvent{
		Type:       domain.CatalogItemDeleted,
		ItemID:     "42",
		Origin:     "instance-b",
		OccurredAt: at,
	})
	require.NoError(t, err)

	event, err := DecodeCatalogEvent(data)

	require.NoError(t, err)
	assert.Equal(t, domain.CatalogItemDeleted, event.Type)
	assert.Equal(t, "42", event.ItemID)
	assert.Equal(t, "instance-b", event.Origin)
	assert.True(t, at.Equal(event.OccurredAt))
}

func TestDecodeCatalogEvent_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "nope"},
		{"missing type", `{"itemId":"1","origin":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCatalogEvent([]byte(tt.value))
			assert.Error(t, err)
		})
	}
}

func TestCatalogEventHandler_AppliesDecodedEvent(t *testing.T) {
	applier := &fakeApplier{}
	handler := CatalogEventHandler(applier)

	err := handler(context.Background(), []byte("7"), []byte(`{"type":"catalog.item_updated","itemId":"7","origin":"b"}`))

	require.NoError(t, err)
	require.Len(t, applier.events, 1)
	assert.Equal(t, "7", applier.events[0].ItemID)
}

func TestCatalogEventHandler_PropagatesErrors(t *testing.T) {
	applier := &fakeApplier{err: errors.New("refresh failed")}
	handler := CatalogEventHandler(applier)

	assert.Error(t, handler(context.Background(), nil, []byte(`{"type":"catalog.item_created"}`)))
	assert.Error(t, handler(context.Background(), nil, []byte(`garbage`)))
	assert.Len(t, applier.events, 1)
}
