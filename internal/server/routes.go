package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.bearerAuth)

			r.With(s.rateLimit).Post("/chat", s.handleChat)
			r.Post("/reset", s.handleReset)
			r.Get("/history", s.handleHistory)
			r.Get("/greeting", s.handleGreeting)
			r.Get("/config", s.handleConfig)
			r.Get("/tools", s.handleListTools)
			r.Post("/tool/{name}", s.handleExecuteTool)
			r.Post("/generate-report", s.handleGenerateReport)
		})
	})

	return r
}
