package v1

import (
	"net/http"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/pkg/utils"
)

type FavoritesHandler struct{}

func NewFavoritesHandler() *FavoritesHandler {
	return &FavoritesHandler{}
}

func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Favorites.Set())
}

// Toggle flips membership of any id; it does not check the catalog.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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
	utils.WriteJSON(w, http.StatusOK, s.Favorites.Toggle(itemID))
}
