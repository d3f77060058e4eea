package v1

import (
	"net/http"
	"time"

	"laza-storefront/internal/domain"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/utils"
)

type CatalogHandler struct {
	catalog *usecase.CatalogRepository
}

func NewCatalogHandler(catalog *usecase.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogResp struct {
	Items       []domain.CatalogItem `json:"items"`
	Count       int                  `json:"count"`
	RefreshedAt time.Time            `json:"refreshedAt"`
}

func newCatalogResp(m *domain.CatalogMirror) catalogResp {
	return catalogResp{
		Items:       m.Items(),
		Count:       m.Len(),
		RefreshedAt: m.RefreshedAt,
	}
}

// List serves the current mirror without touching the remote catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, newCatalogResp(h.catalog.Mirror()))
}

func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	mirror, err := h.catalog.Refresh(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCatalogResp(mirror))
}
