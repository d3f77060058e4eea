package usecase

import (
	"sync"
	"time"

	"laza-storefront/internal/domain"
)

// CartUsecase owns one shopper's cart. Lines keep the name and price captured
// when they were added; the total is always recomputed from those snapshots.
type CartUsecase struct {
	mu    sync.Mutex
	lines []domain.CartLine
	now   func() time.Time
}

func NewCartUsecase() *CartUsecase {
	return &CartUsecase{now: time.Now}
}

// AddItem appends a new line. Repeated adds of the same item each get their own line.
func (c *CartUsecase) AddItem(item domain.CatalogItem) domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, domain.NewCartLine(item, c.now()))
	return domain.NewCartState(c.lines)
}

// RemoveItem drops the first line for id. Unknown ids are a no-op.
func (c *CartUsecase) RemoveItem(id string) domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ItemID == id {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			break
		}
	}
	return domain.NewCartState(c.lines)
}

func (c *CartUsecase) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.SumLines(c.lines)
}

func (c *CartUsecase) State() domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.NewCartState(c.lines)
}

// Purge drops every line for a deleted catalog item.
func (c *CartUsecase) Purge(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.lines[:0:0]
	for _, l := range c.lines {
		if l.ItemID != id {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Checkout hands back what the shopper is buying and empties the cart.
// No payment is taken here.
func (c *CartUsecase) Checkout() (domain.CheckoutSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return domain.CheckoutSummary{}, domain.ErrEmptyCart
	}
	state := domain.NewCartState(c.lines)
	c.lines = nil
	return domain.CheckoutSummary{
		Lines:      state.Lines,
		Total:      state.Total,
		LineCount:  len(state.Lines),
		CheckedOut: c.now(),
	}, nil
}
