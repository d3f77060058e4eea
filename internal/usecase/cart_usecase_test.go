package usecase

import (
	"math/rand"
	"testing"
	"time"

	"laza-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUsecase_AddRemoveTotal(t *testing.T) {
	cart := NewCartUsecase()

	cart.AddItem(seedItems[0]) // T-shirt 20
	cart.AddItem(seedItems[1]) // Jeans 30
	state := cart.AddItem(seedItems[0])

	assert.Equal(t, 3, state.Count())
	assert.Equal(t, 70.0, state.Total)

	state = cart.RemoveItem("1")
	assert.Equal(t, 2, state.Count())
	assert.Equal(t, 50.0, state.Total)
	// Only the first matching line is removed.
	assert.Equal(t, "2", state.Lines[0].ItemID)
	assert.Equal(t, "1", state.Lines[1].ItemID)
}

func TestCartUsecase_TwoShirtsThenRemoveOne(t *testing.T) {
	cart := NewCartUsecase()
	shirt := seedItems[0]

	cart.AddItem(shirt)
	state := cart.AddItem(shirt)
	require.Equal(t, 2, state.Count())
	require.Equal(t, 40.0, state.Total)

	state = cart.RemoveItem(shirt.ID)
	assert.Equal(t, 1, state.Count())
	assert.Equal(t, 20.0, state.Total)
}

func TestCartUsecase_RemoveUnknownIsNoop(t *testing.T) {
	cart := NewCartUsecase()
	cart.AddItem(seedItems[0])

	state := cart.RemoveItem("missing")

	assert.Equal(t, 1, state.Count())
	assert.Equal(t, 20.0, cart.Total())
}

func TestCartUsecase_PriceSnapshotSurvivesCatalogEdit(t *testing.T) {
	cart := NewCartUsecase()
	item := domain.CatalogItem{ID: "2", Name: "Jeans", Price: 30, Image: "j"}
	cart.AddItem(item)

	item.Price = 99
	item.Name = "Renamed"

	state := cart.State()
	assert.Equal(t, 30.0, state.Total)
	assert.Equal(t, "Jeans", state.Lines[0].Name)
}

func TestCartUsecase_PurgeRemovesAllLines(t *testing.T) {
	cart := NewCartUsecase()
	cart.AddItem(seedItems[0])
	cart.AddItem(seedItems[1])
	cart.AddItem(seedItems[0])

	cart.Purge("1")

	state := cart.State()
	assert.Equal(t, 1, state.Count())
	assert.Equal(t, 30.0, state.Total)
}

func TestCartUsecase_Checkout(t *testing.T) {
	cart := NewCartUsecase()
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cart.now = func() time.Time { return fixed }
	cart.AddItem(seedItems[2])
	cart.AddItem(seedItems[0])

	summary, err := cart.Checkout()

	require.NoError(t, err)
	assert.Equal(t, 2, summary.LineCount)
	assert.Equal(t, 60.0, summary.Total)
	assert.Equal(t, fixed, summary.CheckedOut)
	assert.Equal(t, 0, cart.State().Count())
	assert.Equal(t, 0.0, cart.Total())
}

func TestCartUsecase_CheckoutEmpty(t *testing.T) {
	_, err := NewCartUsecase().Checkout()

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCartUsecase_StateIsACopy(t *testing.T) {
	cart := NewCartUsecase()
	state := cart.AddItem(seedItems[0])

	state.Lines[0].Price = 1000

	assert.Equal(t, 20.0, cart.Total())
}

// After any sequence of adds and removes the total equals the sum of line prices.
func TestCartUsecase_TotalMatchesLines(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		cart := NewCartUsecase()
		for step := 0; step < 40; step++ {
			item := seedItems[rng.Intn(len(seedItems))]
			if rng.Intn(3) == 0 {
				cart.RemoveItem(item.ID)
			} else {
				cart.AddItem(item)
			}

			state := cart.State()
			var sum float64
			for _, l := range state.Lines {
				sum += l.Price
			}
			require.InDelta(t, sum, state.Total, 1e-9)
			require.InDelta(t, sum, cart.Total(), 1e-9)
		}
	}
}
