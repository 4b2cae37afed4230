package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type collectionResponse struct {
	Collection models.Collection `json:"collection"`
	Records    []models.Record   `json:"records"`
	Length     int               `json:"length"`
}

func (h *Handler) readCollection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	c, err := models.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.readCollection").Send()
		utils.WriteError(w, r, err, http.StatusBadRequest)
		return
	}

	records, err := h.services.CacheService.Read(r.Context(), c)
	if err != nil {
		log.Err(err).Str("func", "*Handler.readCollection").Msg("error reading collection")
		utils.WriteError(w, r, err, statusFromError(err))
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, collectionResponse{
		Collection: c,
		Records:    records,
		Length:     len(records),
	}, http.StatusOK)
}

// writeRecord applies a create, update or delete. The response status tells
// the UI where the mutation went: 201/200 when the backend confirmed it and
// 202 when it was applied locally and queued.
func (h *Handler) writeRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	c, err := models.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.writeRecord").Send()
		utils.WriteError(w, r, err, http.StatusBadRequest)
		return
	}

	verb, err := models.ParseVerb(chi.URLParam(r, "verb"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.writeRecord").Send()
		utils.WriteError(w, r, err, http.StatusBadRequest)
		return
	}

	var payload models.Record
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err = dec.Decode(&payload); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Err(err).Str("func", "*Handler.writeRecord").Msg("Invalid JSON was passed")
			utils.WriteError(w, r, ErrInvalidJSON, http.StatusBadRequest)
			return
		}
	}

	result, err := h.services.CacheService.Write(r.Context(), c, verb, payload)
	if err != nil {
		log.Err(err).Str("func", "*Handler.writeRecord").
			Str("collection", string(c)).
			Str("verb", string(verb)).
			Msg("error writing record")
		utils.WriteError(w, r, err, statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, writeStatus(verb, result))
}

func writeStatus(verb models.Verb, result models.WriteResult) int {
	switch {
	case result.Queued:
		return http.StatusAccepted
	case verb == models.VerbCreate:
		return http.StatusCreated
	}
	return http.StatusOK
}
