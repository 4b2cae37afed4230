package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/models"
)

func TestSyncStatus_Success(t *testing.T) {
	env := newTestEnv("")
	last := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)
	env.sync.statusFn = func(context.Context) (models.SyncStatus, error) {
		return models.SyncStatus{Pending: 3, Reachable: false, LastSyncAt: &last}, nil
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/sync/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.SyncStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(3), got.Pending)
	assert.False(t, got.Reachable)
	require.NotNil(t, got.LastSyncAt)
	assert.True(t, last.Equal(*got.LastSyncAt))
}

func TestSyncStatus_WithoutSession(t *testing.T) {
	env := newTestEnv("")
	env.session.familyID = ""
	env.sync.statusFn = func(context.Context) (models.SyncStatus, error) {
		return models.SyncStatus{Pending: 1}, nil
	}

	// статус доступен и без сессии
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/sync/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncStatus_Error(t *testing.T) {
	env := newTestEnv("")
	env.sync.statusFn = func(context.Context) (models.SyncStatus, error) {
		return models.SyncStatus{}, store.ErrExecutingQuery
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/sync/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSyncNow(t *testing.T) {
	tests := []struct {
		name        string
		summary     models.SyncSummary
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "all synced",
			summary:     models.SyncSummary{SuccessCount: 2},
			wantStatus:  http.StatusOK,
			wantMessage: "synced 2 changes",
		},
		{
			name:        "partial failure",
			summary:     models.SyncSummary{SuccessCount: 2, FailCount: 1},
			wantStatus:  http.StatusOK,
			wantMessage: "synced 2 changes, failed to sync 1 change",
		},
		{
			name:        "already running",
			summary:     models.SyncSummary{Skipped: true},
			wantStatus:  http.StatusConflict,
			wantMessage: "sync already in progress",
		},
		{
			name:        "empty queue",
			summary:     models.SyncSummary{},
			wantStatus:  http.StatusOK,
			wantMessage: "nothing to sync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")
			env.cache.syncFn = func(context.Context) (models.SyncSummary, error) {
				return tt.summary, nil
			}

			rec := env.do(httptest.NewRequest(http.MethodPost, "/api/sync", nil))
			require.Equal(t, tt.wantStatus, rec.Code)

			var got syncResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.summary.SuccessCount, got.SuccessCount)
			assert.Equal(t, tt.summary.FailCount, got.FailCount)
			assert.Equal(t, tt.summary.Skipped, got.Skipped)
		})
	}
}

func TestSyncNow_Error(t *testing.T) {
	env := newTestEnv("")
	env.cache.syncFn = func(context.Context) (models.SyncSummary, error) {
		return models.SyncSummary{}, store.ErrExecutingQuery
	}

	rec := env.do(httptest.NewRequest(http.MethodPost, "/api/sync", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestClearQueue(t *testing.T) {
	env := newTestEnv("")
	env.cache.clearFn = func(context.Context) (int64, error) {
		return 4, nil
	}

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/api/sync/queue", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":4}`, rec.Body.String())
}

func TestClearQueue_Error(t *testing.T) {
	env := newTestEnv("")
	env.cache.clearFn = func(context.Context) (int64, error) {
		return 0, store.ErrExecutingStatement
	}

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/api/sync/queue", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
