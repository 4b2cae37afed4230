package http

import (
	"net/http"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type syncResponse struct {
	models.SyncSummary
	Message string `json:"message"`
}

type clearQueueResponse struct {
	Removed int64 `json:"removed"`
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.SyncService.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.syncStatus").Msg("error getting sync status")
		utils.WriteError(w, r, err, statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// syncNow drains the queue once. A request arriving while a drain runs gets
// 409 with the skipped summary instead of waiting.
func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.CacheService.SyncNow(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.syncNow").Msg("error draining sync queue")
		utils.WriteError(w, r, err, statusFromError(err))
		return
	}

	status := http.StatusOK
	if summary.Skipped {
		status = http.StatusConflict
	}

	utils.WriteJSON(w, syncResponse{SyncSummary: summary, Message: service.SummaryMessage(summary)}, status)
}

func (h *Handler) clearQueue(w http.ResponseWriter, r *http.Request) {
	removed, err := h.services.CacheService.ClearQueue(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.clearQueue").Msg("error clearing sync queue")
		utils.WriteError(w, r, err, statusFromError(err))
		return
	}

	utils.WriteJSON(w, clearQueueResponse{Removed: removed}, http.StatusOK)
}
