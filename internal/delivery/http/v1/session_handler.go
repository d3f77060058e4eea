package v1

import (
	"net/http"
	"time"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"
)

type SessionHandler struct {
	sessions *usecase.SessionUsecase
	tokenTTL time.Duration
}

func NewSessionHandler(sessions *usecase.SessionUsecase, tokenTTL time.Duration) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokenTTL: tokenTTL}
}

type sessionResp struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Start()

	token, err := utils.GenerateSessionToken(s.ID, h.tokenTTL)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to sign session token")
		h.sessions.End(s.ID)
		utils.WriteError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, sessionResp{
		Token:     token,
		SessionID: s.ID,
		StartedAt: s.StartedAt,
	})
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.sessions.End(s.ID)
	w.WriteHeader(http.StatusNoContent)
}
