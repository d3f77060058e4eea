package domain

import (
	"context"
	"time"
)

// Catalog event types
const (
	CatalogItemCreated = "catalog.item_created"
	CatalogItemUpdated = "catalog.item_updated"
	CatalogItemDeleted = "catalog.item_deleted"
)

// CatalogEvent announces a confirmed remote catalog write to other instances.
type CatalogEvent struct {
	Type       string    `json:"type"`
	ItemID     string    `json:"itemId"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurredAt"`
}

type CatalogEventPublisher interface {
	Publish(ctx context.Context, event CatalogEvent) error
}
