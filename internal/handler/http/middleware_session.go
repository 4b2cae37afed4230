package http

import (
	"net/http"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
)

// requireSession rejects requests with 401 while no session token with a
// family scope is set.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.session.Scope(); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("request without session")
			utils.WriteError(w, r, service.ErrNoSession, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
