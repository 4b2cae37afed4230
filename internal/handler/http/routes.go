package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without session
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getVersion)
		r.Get("/api/session", h.getSession)
		r.Put("/api/session", h.putSession)
		r.Delete("/api/session", h.deleteSession)
		r.Get("/api/sync/status", h.syncStatus)
	})

	// routes scoped to the current family
	router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/api/collections/{collection}", h.readCollection)
		r.With(h.verifyHash).Post("/api/collections/{collection}/{verb}", h.writeRecord)

		r.Post("/api/sync", h.syncNow)
		r.Delete("/api/sync/queue", h.clearQueue)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
