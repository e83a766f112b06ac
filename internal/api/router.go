package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/knx-ga-studio/internal/panel"
)

// healthCheckTimeout bounds each dependency check in /api/health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware())
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/parse", s.handleParse)

			r.Route("/export", func(r chi.Router) {
				r.Post("/xml", s.handleExportXML)
				r.Post("/xlsx", s.handleExportXLSX)
			})

			r.Route("/template", func(r chi.Router) {
				r.Post("/export", s.handleExportTemplate)
				r.Post("/import", s.handleImportTemplate)
			})

			r.Delete("/sessions/{id}", s.handleDeleteSession)
		})
	})

	// Editor UI (embedded unless a directory override is configured)
	r.Handle("/*", panel.Handler(s.uiDir))

	return r
}

// handleHealth returns the server health status.
//
// Each registered dependency is checked; any failure turns the overall
// status into "degraded" without changing the HTTP status code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	checks := make(map[string]string, len(s.checks))

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := s.checks[name].HealthCheck(ctx)
		cancel()
		if err != nil {
			status = "degraded"
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	resp := map[string]any{
		"status":  status,
		"version": s.version,
	}
	if len(checks) > 0 {
		resp["checks"] = checks
	}
	writeJSON(w, http.StatusOK, resp)
}
