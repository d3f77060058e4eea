package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type UploadHandler struct {
	images        ImageStore
	maxUploadSize int64
}

func NewUploadHandler(images ImageStore, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		images:        images,
		maxUploadSize: maxUploadSizeMB << 20, // Convert MB to bytes
	}
}

// UploadFile stores an image and returns its public URL.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	url, ok := h.store(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// UploadEditImage stores an image and writes its URL into the draft's image field.
func (h *UploadHandler) UploadEditImage(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.Edit.Session().State != domain.EditStateDrafting {
		writeDomainError(w, r, domain.ErrInvalidState)
		return
	}

	url, ok := h.store(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Edit.EditField(domain.FieldImage, url))
}

func (h *UploadHandler) store(w http.ResponseWriter, r *http.Request) (string, bool) {
	log := logger.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload rejected: multipart parse failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !utils.IsImage(contentType) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return "", false
	}

	data, newContentType, err := utils.ProcessImage(file, header.Filename)
	if err != nil {
		log.Warn().Err(err).Str("file", header.Filename).Msg("Image processing failed")
		utils.WriteError(w, http.StatusBadRequest, "Failed to process image")
		return "", false
	}

	url, err := h.images.UploadBuffer(r.Context(), data, newContentType)
	if err != nil {
		log.Error().Err(err).Msg("Image upload failed")
		utils.WriteError(w, http.StatusBadGateway, "Failed to upload file")
		return "", false
	}

	log.Info().Str("url", url).Int("bytes", len(data)).Msg("Image uploaded")
	return url, true
}
