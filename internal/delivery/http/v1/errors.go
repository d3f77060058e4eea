package v1

import (
	"errors"
	"net/http"

	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"
)

// writeDomainError maps the catalog error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteFieldErrors(w, http.StatusUnprocessableEntity, "validation failed", verr.Fields)
	case errors.Is(err, domain.ErrGateway):
		logger.WithContext(r.Context()).Error().Err(err).Msg("Catalog gateway failure")
		utils.WriteError(w, http.StatusBadGateway, "catalog unavailable, please retry")
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		utils.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Unhandled error")
		utils.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
