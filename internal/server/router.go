package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/bjulian5/ghprs/internal/session"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(registry *session.Registry, apiKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := NewSessionHandler(registry)

	// Unauthenticated routes
	r.Get("/health", h.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Get("/sessions", h.List)

		r.Route("/{session}", func(r chi.Router) {
			r.Get("/unacknowledged-prs", h.Unacknowledged)
			r.Get("/acknowledgement", h.Acknowledged)
			r.Post("/acknowledgement/{prID}", h.Acknowledge)
			r.Delete("/acknowledgement/{prID}", h.Unacknowledge)
			r.Post("/refresh", h.Refresh)
			r.Delete("/clear-session", h.ClearSession)
		})
	})

	return r
}
