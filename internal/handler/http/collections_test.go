package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/models"
)

func TestReadCollection_Success(t *testing.T) {
	env := newTestEnv("")
	env.cache.readFn = func(_ context.Context, c models.Collection) ([]models.Record, error) {
		assert.Equal(t, models.CollectionAssignments, c)
		return []models.Record{
			{"id": "A1", "family_id": "fam-1", "completed": true},
			{"id": "A2", "family_id": "fam-1", "completed": false},
		}, nil
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/collections/assignments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp collectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.CollectionAssignments, resp.Collection)
	assert.Equal(t, 2, resp.Length)
	assert.Equal(t, "A1", resp.Records[0].ID())
	assert.Equal(t, true, resp.Records[0]["completed"])
}

func TestReadCollection_EmptyIsArray(t *testing.T) {
	env := newTestEnv("")
	env.cache.readFn = func(context.Context, models.Collection) ([]models.Record, error) {
		return nil, nil
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/collections/rewards", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"records":[]`)
}

func TestReadCollection_UnknownCollection(t *testing.T) {
	env := newTestEnv("")

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/collections/unicorns", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), models.ErrUnknownCollection.Error())
}

func TestReadCollection_StoreError(t *testing.T) {
	env := newTestEnv("")
	env.cache.readFn = func(context.Context, models.Collection) ([]models.Record, error) {
		return nil, fmt.Errorf("read cached chores: %w", store.ErrExecutingQuery)
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/collections/chores", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteRecord_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		verb       string
		result     models.WriteResult
		wantStatus int
	}{
		{
			name:       "online create",
			verb:       "create",
			result:     models.WriteResult{Record: models.Record{"id": "C1"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "online update",
			verb:       "update",
			result:     models.WriteResult{Record: models.Record{"id": "C1"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "queued update",
			verb:       "update",
			result:     models.WriteResult{Record: models.Record{"id": "C1"}, Queued: true, OperationID: 4},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "queued delete",
			verb:       "delete",
			result:     models.WriteResult{Queued: true, OperationID: 5},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")
			env.cache.writeFn = func(_ context.Context, c models.Collection, verb models.Verb, payload models.Record) (models.WriteResult, error) {
				assert.Equal(t, models.CollectionChores, c)
				assert.Equal(t, models.Verb(tt.verb), verb)
				assert.Equal(t, "C1", payload.ID())
				return tt.result, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/api/collections/chores/"+tt.verb,
				strings.NewReader(`{"id":"C1","title":"dishes"}`))
			rec := env.do(req)
			require.Equal(t, tt.wantStatus, rec.Code)

			var got models.WriteResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.result.Queued, got.Queued)
			assert.Equal(t, tt.result.OperationID, got.OperationID)
		})
	}
}

func TestWriteRecord_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{"unknown collection", "/api/collections/unicorns/create", `{}`, models.ErrUnknownCollection.Error()},
		{"unknown verb", "/api/collections/chores/archive", `{}`, models.ErrUnknownVerb.Error()},
		{"invalid json", "/api/collections/chores/create", `{"id":`, ErrInvalidJSON.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")
			env.cache.writeFn = func(context.Context, models.Collection, models.Verb, models.Record) (models.WriteResult, error) {
				t.Fatal("Write must not be called")
				return models.WriteResult{}, nil
			}

			rec := env.do(httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestWriteRecord_EmptyBodyReachesService(t *testing.T) {
	env := newTestEnv("")
	env.cache.writeFn = func(_ context.Context, _ models.Collection, _ models.Verb, payload models.Record) (models.WriteResult, error) {
		assert.Nil(t, payload)
		return models.WriteResult{}, service.ErrInvalidDataProvided
	}

	rec := env.do(httptest.NewRequest(http.MethodPost, "/api/collections/chores/create", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteRecord_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing id", service.ErrRecordIDRequired, http.StatusBadRequest},
		{"foreign family", service.ErrScopeMismatch, http.StatusForbidden},
		{"not cached", fmt.Errorf("patch: %w", store.ErrRecordNotFound), http.StatusNotFound},
		{"remote not found", fmt.Errorf("%w: %w", store.ErrRecordNotFound, adapter.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: %w", service.ErrConflict, adapter.ErrConflict), http.StatusConflict},
		{"expired token", fmt.Errorf("%w: %w", service.ErrUnauthorized, adapter.ErrUnauthorized), http.StatusUnauthorized},
		{"backend down", fmt.Errorf("%w: %w", service.ErrRemoteUnavailable, adapter.ErrUnavailable), http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")
			env.cache.writeFn = func(context.Context, models.Collection, models.Verb, models.Record) (models.WriteResult, error) {
				return models.WriteResult{}, tt.err
			}

			req := httptest.NewRequest(http.MethodPost, "/api/collections/assignments/update",
				strings.NewReader(`{"id":"A1","completed":true}`))
			rec := env.do(req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Error   string `json:"error"`
				TraceID string `json:"trace_id"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.Equal(t, rec.Header().Get(traceIDHeader), body.TraceID)
		})
	}
}
