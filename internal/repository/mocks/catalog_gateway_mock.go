package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"laza-storefront/internal/domain"
)

// MockCatalogGateway is an in-memory CatalogGateway that records calls and can
// be told to fail.
type MockCatalogGateway struct {
	mu     sync.Mutex
	items  []domain.CatalogItem
	nextID int

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// BeforeList runs at the start of every List call, outside the lock.
	BeforeList func()

	ListCalls   int
	CreateCalls []domain.ItemFields
	UpdateCalls []UpdateCall
	DeleteCalls []string
}

// UpdateCall records parameters passed to Update
type UpdateCall struct {
	ID     string
	Fields domain.ItemFields
}

// NewMockCatalogGateway creates a gateway holding items in the given order.
func NewMockCatalogGateway(items ...domain.CatalogItem) *MockCatalogGateway {
	m := &MockCatalogGateway{nextID: 100}
	m.items = append(m.items, items...)
	return m
}

// Put inserts or replaces a document behind the repository's back, as another
// admin would.
func (m *MockCatalogGateway) Put(item domain.CatalogItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == item.ID {
			m.items[i] = item
			return
		}
	}
	m.items = append(m.items, item)
}

// Remove deletes a document behind the repository's back.
func (m *MockCatalogGateway) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
}

func (m *MockCatalogGateway) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls + len(m.CreateCalls) + len(m.UpdateCalls) + len(m.DeleteCalls)
}

func (m *MockCatalogGateway) List(ctx context.Context) ([]domain.CatalogItem, error) {
	if m.BeforeList != nil {
		m.BeforeList()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.CatalogItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MockCatalogGateway) Create(ctx context.Context, fields domain.ItemFields) (domain.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, fields)
	if m.CreateErr != nil {
		return domain.CatalogItem{}, m.CreateErr
	}
	m.nextID++
	item := domain.CatalogItem{
		ID:    strconv.Itoa(m.nextID),
		Name:  fields.Name,
		Price: fields.Price,
		Image: fields.Image,
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *MockCatalogGateway) Update(ctx context.Context, id string, fields domain.ItemFields) (domain.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{ID: id, Fields: fields})
	if m.UpdateErr != nil {
		return domain.CatalogItem{}, m.UpdateErr
	}
	for i, it := range m.items {
		if it.ID == id {
			m.items[i] = domain.CatalogItem{ID: id, Name: fields.Name, Price: fields.Price, Image: fields.Image}
			return m.items[i], nil
		}
	}
	return domain.CatalogItem{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
}

func (m *MockCatalogGateway) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.removeLocked(id)
	return nil
}

func (m *MockCatalogGateway) removeLocked(id string) {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// MockEventPublisher records published catalog events.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []domain.CatalogEvent
	Err    error
}

func (p *MockEventPublisher) Publish(ctx context.Context, event domain.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}
