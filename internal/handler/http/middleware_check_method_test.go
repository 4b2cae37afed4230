// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux without Handler.Init().
func buildRouter() *chi.Mux {
	ok := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(status) }
	}

	router := chi.NewRouter()
	router.Get("/api/items", ok(http.StatusOK))
	router.Post("/api/items", ok(http.StatusCreated))
	router.Get("/api/items/{id}", ok(http.StatusOK))
	router.Delete("/api/items/{id}", ok(http.StatusNoContent))
	router.Route("/api/nested", func(r chi.Router) {
		r.Put("/{id}", ok(http.StatusOK))
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedAllow  string
	}{
		{"registered GET", http.MethodGet, "/api/items", http.StatusOK, ""},
		{"registered POST", http.MethodPost, "/api/items", http.StatusCreated, ""},
		{"registered param DELETE", http.MethodDelete, "/api/items/7", http.StatusNoContent, ""},
		{"wrong method on static", http.MethodDelete, "/api/items", http.StatusMethodNotAllowed, "GET, POST"},
		{"wrong method on param", http.MethodPost, "/api/items/7", http.StatusMethodNotAllowed, "GET, DELETE"},
		{"wrong method on subrouter", http.MethodGet, "/api/nested/3", http.StatusMethodNotAllowed, "PUT"},
		{"unknown path", http.MethodGet, "/api/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedAllow, rec.Header().Get("Allow"))
		})
	}
}

func TestAllowedMethods_NoMatch(t *testing.T) {
	assert.Empty(t, allowedMethods(buildRouter(), "/nowhere"))
}
