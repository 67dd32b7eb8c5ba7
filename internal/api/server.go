// server.go - HTTP router and middleware configuration.
//
// chi wires URLs to handlers; the middleware stack is request logging,
// panic recovery, request IDs and CORS. No authentication: the engine
// computes from request data alone and stores nothing.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all tax routes configured.
// allowedOrigins controls CORS; an empty list allows any origin.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/tax", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Post("/compare", h.Compare)
		r.Post("/itr-form", h.ITRForm)
		r.Post("/suggestions", h.Suggestions)
		r.Get("/fiscal-year", h.FiscalYear)
	})

	return r
}
