package v1

import (
	"fmt"
	"net/http"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/internal/domain"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

type CartHandler struct {
	catalog  *usecase.CatalogRepository
	maxLines int
}

func NewCartHandler(catalog *usecase.CatalogRepository, maxLines int) *CartHandler {
	return &CartHandler{catalog: catalog, maxLines: maxLines}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Cart.State())
}

type addToCartReq struct {
	ItemID string `json:"itemId"`
}

// AddToCart adds the mirror's current copy of the item. Prices are captured
// at add time and never re-read.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		utils.WriteError(w, http.StatusBadRequest, "itemId is required")
		return
	}

	item, found := h.catalog.Mirror().Find(req.ItemID)
	if !found {
		writeDomainError(w, r, fmt.Errorf("add to cart %q: %w", req.ItemID, domain.ErrNotFound))
		return
	}

	if h.maxLines > 0 && s.Cart.State().Count() >= h.maxLines {
		utils.WriteError(w, http.StatusBadRequest, "Cart line limit reached")
		return
	}

	state := s.Cart.AddItem(item)
	logger.WithContext(r.Context()).Debug().
		Str("item_id", item.ID).
		Int("lines", state.Count()).
		Msg("Item added to cart")
	utils.WriteJSON(w, http.StatusOK, state)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID := r.PathValue("itemId")
	if itemID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Item ID required")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Cart.RemoveItem(itemID))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summary, err := s.Cart.Checkout()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	logger.WithContext(r.Context()).Info().
		Int("lines", summary.LineCount).
		Float64("total", summary.Total).
		Msg("Cart checked out")
	utils.WriteJSON(w, http.StatusOK, summary)
}
