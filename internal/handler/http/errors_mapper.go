package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/session"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
	"github.com/MKhiriev/go-chore-keeper/models"
)

// errorStatusMap keys never wrap each other with conflicting statuses, so
// the iteration order of statusFromError does not matter.
var errorStatusMap = map[error]int{
	models.ErrUnknownCollection: http.StatusBadRequest,
	models.ErrUnknownVerb:       http.StatusBadRequest,

	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrRecordIDRequired:     http.StatusBadRequest,
	service.ErrUnsupportedOperation: http.StatusBadRequest,
	service.ErrNoSession:            http.StatusUnauthorized,
	service.ErrUnauthorized:         http.StatusUnauthorized,
	service.ErrScopeMismatch:        http.StatusForbidden,
	service.ErrAccessDenied:         http.StatusForbidden,
	service.ErrConflict:             http.StatusConflict,
	service.ErrRemoteUnavailable:    http.StatusServiceUnavailable,

	session.ErrNoScope:                  http.StatusUnauthorized,
	utils.ErrClaimNotFound:              http.StatusUnauthorized,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,

	store.ErrRecordNotFound:  http.StatusNotFound,
	store.ErrRecordExists:    http.StatusConflict,
	store.ErrRecordWithoutID: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrEncodingRecord:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
