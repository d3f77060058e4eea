package domain

import "time"

// CartLine snapshots name and price at the moment the item was added, so later
// catalog edits never change what the shopper already put in the cart.
type CartLine struct {
	ItemID  string    `json:"itemId"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
	AddedAt time.Time `json:"addedAt"`
}

func NewCartLine(item CatalogItem, at time.Time) CartLine {
	return CartLine{
		ItemID:  item.ID,
		Name:    item.Name,
		Price:   item.Price,
		AddedAt: at,
	}
}

type CartState struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// NewCartState copies lines and computes the total from their snapshot prices.
func NewCartState(lines []CartLine) CartState {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return CartState{Lines: out, Total: SumLines(out)}
}

func SumLines(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price
	}
	return total
}

func (c CartState) Count() int {
	return len(c.Lines)
}

// CheckoutSummary is what the shopper confirmed when leaving the cart.
type CheckoutSummary struct {
	Lines      []CartLine `json:"lines"`
	Total      float64    `json:"total"`
	LineCount  int        `json:"lineCount"`
	CheckedOut time.Time  `json:"checkedOutAt"`
}
