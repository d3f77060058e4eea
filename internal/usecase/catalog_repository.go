package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"
)

// CatalogRepository owns the in-memory mirror of the remote catalog.
// Every write goes to the gateway first and is followed by a full refresh;
// the mirror is never patched locally.
type CatalogRepository struct {
	gateway   domain.CatalogGateway
	mirror    atomic.Pointer[domain.CatalogMirror]
	publisher domain.CatalogEventPublisher
	origin    string
	timeout   time.Duration
	now       func() time.Time

	mu        sync.RWMutex
	listeners map[string]domain.Purger
}

type CatalogOption func(*CatalogRepository)

// WithEventPublisher announces confirmed writes to other instances, tagged with origin.
func WithEventPublisher(p domain.CatalogEventPublisher, origin string) CatalogOption {
	return func(r *CatalogRepository) {
		r.publisher = p
		r.origin = origin
	}
}

// WithGatewayTimeout bounds every gateway round trip. Zero disables the bound.
func WithGatewayTimeout(d time.Duration) CatalogOption {
	return func(r *CatalogRepository) {
		r.timeout = d
	}
}

func NewCatalogRepository(gateway domain.CatalogGateway, opts ...CatalogOption) *CatalogRepository {
	r := &CatalogRepository{
		gateway:   gateway,
		now:       time.Now,
		listeners: make(map[string]domain.Purger),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.mirror.Store(domain.EmptyMirror())
	return r
}

// Mirror returns the current mirror. It stays valid and unchanged even if a
// refresh replaces it afterwards.
func (r *CatalogRepository) Mirror() *domain.CatalogMirror {
	return r.mirror.Load()
}

// Refresh lists the remote catalog and swaps the mirror in one step.
// Overlapping refreshes are not coordinated: the last one to settle wins.
func (r *CatalogRepository) Refresh(ctx context.Context) (*domain.CatalogMirror, error) {
	items, err := r.callList(ctx)
	if err != nil {
		return nil, &domain.GatewayError{Op: "list", Err: err}
	}

	kept := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || !domain.ValidPrice(it.Price) {
			logger.Warn().
				Str("item_id", it.ID).
				Float64("price", it.Price).
				Msg("Skipping malformed catalog document")
			continue
		}
		kept = append(kept, it)
	}

	next := domain.NewCatalogMirror(kept, r.now())
	r.mirror.Store(next)

	logger.Debug().Int("items", next.Len()).Msg("Catalog mirror refreshed")
	return next, nil
}

// Create commits a new item and refreshes the mirror so it carries the
// server-assigned id and ordering. If the write succeeded but the refresh did
// not, the created item is returned together with the refresh error.
func (r *CatalogRepository) Create(ctx context.Context, draft domain.ValidatedItem) (domain.CatalogItem, error) {
	if err := domain.ValidateItem(draft); err != nil {
		return domain.CatalogItem{}, err
	}

	created, err := r.callCreate(ctx, draft.Fields())
	if err != nil {
		return domain.CatalogItem{}, &domain.GatewayError{Op: "create", Err: err}
	}

	mirror, refreshErr := r.Refresh(ctx)
	if refreshErr == nil {
		if item, ok := mirror.Find(created.ID); ok {
			created = item
		}
	}

	r.publish(ctx, domain.CatalogItemCreated, created.ID)
	return created, refreshErr
}

// Update replaces every field of an existing item. The id must be present in
// the current mirror; that check happens before any gateway call.
func (r *CatalogRepository) Update(ctx context.Context, id string, draft domain.ValidatedItem) (domain.CatalogItem, error) {
	if !r.Mirror().Contains(id) {
		return domain.CatalogItem{}, fmt.Errorf("update %q: %w", id, domain.ErrNotFound)
	}
	if err := domain.ValidateItem(draft); err != nil {
		return domain.CatalogItem{}, err
	}

	updated, err := r.callUpdate(ctx, id, draft.Fields())
	if err != nil {
		return domain.CatalogItem{}, &domain.GatewayError{Op: "update", Err: err}
	}

	mirror, refreshErr := r.Refresh(ctx)
	if refreshErr == nil {
		if item, ok := mirror.Find(id); ok {
			updated = item
		}
	}

	r.publish(ctx, domain.CatalogItemUpdated, id)
	return updated, refreshErr
}

// Delete removes an item remotely, refreshes the mirror and only then purges
// the id from every subscribed cart and favorites owner.
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	if !r.Mirror().Contains(id) {
		return fmt.Errorf("delete %q: %w", id, domain.ErrNotFound)
	}

	if err := r.callDelete(ctx, id); err != nil {
		return &domain.GatewayError{Op: "delete", Err: err}
	}

	// The remote delete is confirmed, so purge runs even if the refresh fails.
	_, refreshErr := r.Refresh(ctx)
	r.purge(id)
	r.publish(ctx, domain.CatalogItemDeleted, id)
	return refreshErr
}

// ApplyRemoteEvent reconciles a write confirmed by another instance.
// Events that originated here are ignored.
func (r *CatalogRepository) ApplyRemoteEvent(ctx context.Context, event domain.CatalogEvent) error {
	if r.origin != "" && event.Origin == r.origin {
		return nil
	}

	_, err := r.Refresh(ctx)
	if event.Type == domain.CatalogItemDeleted && event.ItemID != "" {
		r.purge(event.ItemID)
	}
	return err
}

// Subscribe registers an owner of local state that must forget deleted ids.
func (r *CatalogRepository) Subscribe(key string, p domain.Purger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[key] = p
}

func (r *CatalogRepository) Unsubscribe(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, key)
}

func (r *CatalogRepository) purge(id string) {
	r.mu.RLock()
	listeners := make([]domain.Purger, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l.Purge(id)
	}
	logger.Info().Str("item_id", id).Int("owners", len(listeners)).Msg("Purged deleted catalog item")
}

func (r *CatalogRepository) publish(ctx context.Context, eventType, id string) {
	if r.publisher == nil {
		return
	}
	event := domain.CatalogEvent{
		Type:       eventType,
		ItemID:     id,
		Origin:     r.origin,
		OccurredAt: r.now(),
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", eventType).Str("item_id", id).Msg("Failed to publish catalog event")
	}
}

// --- Gateway calls ---

func (r *CatalogRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *CatalogRepository) callList(ctx context.Context) ([]domain.CatalogItem, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	start := time.Now()
	items, err := r.gateway.List(ctx)
	logger.GatewayCall("list", time.Since(start), err)
	return items, err
}

func (r *CatalogRepository) callCreate(ctx context.Context, fields domain.ItemFields) (domain.CatalogItem, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	start := time.Now()
	item, err := r.gateway.Create(ctx, fields)
	logger.GatewayCall("create", time.Since(start), err)
	return item, err
}

func (r *CatalogRepository) callUpdate(ctx context.Context, id string, fields domain.ItemFields) (domain.CatalogItem, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	start := time.Now()
	item, err := r.gateway.Update(ctx, id, fields)
	logger.GatewayCall("update", time.Since(start), err)
	return item, err
}

func (r *CatalogRepository) callDelete(ctx context.Context, id string) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	start := time.Now()
	err := r.gateway.Delete(ctx, id)
	logger.GatewayCall("delete", time.Since(start), err)
	return err
}
