package http

import (
	"net/http"

	"github.com/MKhiriev/go-chore-keeper/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppBuildInfo(r.Context()), http.StatusOK)
}
