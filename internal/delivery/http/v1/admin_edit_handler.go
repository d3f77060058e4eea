package v1

import (
	"context"
	"net/http"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/internal/domain"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

// ImageStore holds uploaded catalog images.
type ImageStore interface {
	UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// AdminEditHandler exposes the per-session edit form and catalog deletes.
type AdminEditHandler struct {
	catalog *usecase.CatalogRepository
	images  ImageStore
}

// NewAdminEditHandler accepts a nil ImageStore when uploads are disabled.
func NewAdminEditHandler(catalog *usecase.CatalogRepository, images ImageStore) *AdminEditHandler {
	return &AdminEditHandler{catalog: catalog, images: images}
}

func (h *AdminEditHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Edit.Session())
}

type beginEditReq struct {
	ItemID string `json:"itemId"`
}

// Begin opens a draft; an empty body or itemId starts a new item.
func (h *AdminEditHandler) Begin(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req beginEditReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request")
			return
		}
	}

	target := domain.NewItemTarget()
	if req.ItemID != "" {
		target = domain.ExistingItemTarget(req.ItemID)
	}

	session, err := s.Edit.Begin(target)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

type editFieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *AdminEditHandler) EditField(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req editFieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if !domain.IsDraftField(req.Field) {
		utils.WriteError(w, http.StatusBadRequest, "Unknown field")
		return
	}

	utils.WriteJSON(w, http.StatusOK, s.Edit.EditField(req.Field, req.Value))
}

type submitResp struct {
	Item    domain.CatalogItem `json:"item"`
	Session domain.EditSession `json:"session"`
}

func (h *AdminEditHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	item, err := s.Edit.Submit(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, submitResp{Item: item, Session: s.Edit.Session()})
}

func (h *AdminEditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Edit.Cancel())
}

// DeleteItem removes an item from the remote catalog. Its uploaded image is
// removed afterwards on a best-effort basis.
func (h *AdminEditHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemId")
	if itemID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Item ID required")
		return
	}

	item, _ := h.catalog.Mirror().Find(itemID)
	if err := h.catalog.Delete(r.Context(), itemID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if h.images != nil && item.Image != "" {
		if err := h.images.DeleteFile(r.Context(), item.Image); err != nil {
			logger.WithContext(r.Context()).Debug().
				Err(err).
				Str("item_id", itemID).
				Msg("Image not removed from storage")
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
