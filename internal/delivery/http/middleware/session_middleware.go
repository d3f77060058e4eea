package middleware

import (
	"context"
	"net/http"
	"time"

	"laza-storefront/internal/domain"
	"laza-storefront/internal/usecase"
	"laza-storefront/pkg/logger"
	"laza-storefront/pkg/utils"
)

// RenewedTokenHeader carries a freshly signed token on every authenticated
// response. Clients replace their stored token with it.
const RenewedTokenHeader = "X-Session-Token"

// SessionLookup resolves a live session by id.
type SessionLookup interface {
	Get(id string) (*usecase.Session, bool)
}

// NewSessionMiddleware resolves the session token into a live session and
// stores it in the request context. Missing, invalid or expired sessions get 401.
// Every resolved request extends the session and gets a token valid for another
// tokenTTL, so an active client never outlives its token.
func NewSessionMiddleware(sessions SessionLookup, tokenTTL time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := utils.ExtractSessionToken(r)
			if tokenString == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No session token provided")
				return
			}

			sessionID, err := utils.ValidateSessionToken(tokenString)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid session token")
				return
			}

			session, ok := sessions.Get(sessionID)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Session expired")
				return
			}

			if renewed, err := utils.GenerateSessionToken(session.ID, tokenTTL); err == nil {
				w.Header().Set(RenewedTokenHeader, renewed)
			} else {
				logger.WithContext(r.Context()).Warn().Err(err).Msg("Failed to renew session token")
			}

			ctx := context.WithValue(r.Context(), domain.SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by the session middleware.
func SessionFromContext(ctx context.Context) (*usecase.Session, bool) {
	s, ok := ctx.Value(domain.SessionContextKey).(*usecase.Session)
	return s, ok && s != nil
}
