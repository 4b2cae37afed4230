package http

import (
	"net/http"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
)

type sessionResponse struct {
	Active   bool   `json:"active"`
	FamilyID string `json:"family_id,omitempty"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	familyID, err := h.session.Scope()
	if err != nil {
		utils.WriteJSON(w, sessionResponse{}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, sessionResponse{Active: true, FamilyID: familyID}, http.StatusOK)
}

// putSession replaces the session token with the bearer token of the
// request. Queued operations of another family stop being replayed.
func (h *Handler) putSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Err(ErrEmptyAuthorizationHeader).Send()
		utils.WriteError(w, r, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
		return
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		log.Err(err).Send()
		utils.WriteError(w, r, err, http.StatusUnauthorized)
		return
	}

	if err = h.session.SetToken(token); err != nil {
		log.Err(err).Str("func", "*Handler.putSession").Msg("session token rejected")
		utils.WriteError(w, r, err, http.StatusUnauthorized)
		return
	}

	familyID, _ := h.session.Scope()
	log.Info().Str("family_id", familyID).Msg("session started")

	utils.WriteJSON(w, sessionResponse{Active: true, FamilyID: familyID}, http.StatusOK)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SetToken(""); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteSession").Msg("failed to end session")
		utils.WriteError(w, r, err, http.StatusInternalServerError)
		return
	}

	logger.FromRequest(r).Info().Msg("session ended")
	w.WriteHeader(http.StatusNoContent)
}
