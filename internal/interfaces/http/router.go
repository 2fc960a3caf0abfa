// Package http wires the REST surface: routing, middleware, and the server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/VendorIQ/internal/interfaces/http/handlers"
	"github.com/turtacn/VendorIQ/internal/interfaces/http/middleware"
)

// RouterConfig aggregates everything the router mounts. RateLimit may be nil
// when rate limiting is disabled.
type RouterConfig struct {
	Match     *handlers.MatchHandler
	Vendor    *handlers.VendorHandler
	Admin     *handlers.AdminHandler
	Health    *handlers.HealthHandler
	Logging   *middleware.LoggingMiddleware
	CORS      *middleware.CORSMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Metrics   *prometheus.Metrics
}

// NewRouter builds the chi router with all routes and middleware mounted.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(cfg.Logging.Handler)
	r.Use(chimw.Recoverer)
	r.Use(cfg.CORS.Handler)

	r.Get("/healthz", cfg.Health.Liveness)
	r.Get("/readyz", cfg.Health.Readiness)
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit.Handler)
		}

		r.Route("/match", func(r chi.Router) {
			r.Post("/structured", cfg.Match.MatchStructured)
			r.Post("/query", cfg.Match.MatchQuery)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", cfg.Vendor.List)
			r.Post("/", cfg.Vendor.Upsert)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.Vendor.Get)
				r.Put("/", cfg.Vendor.Upsert)
				r.Delete("/", cfg.Vendor.Delete)
			})
		})

		r.Post("/ingestion/vendors", cfg.Vendor.Batch)
		r.Post("/admin/schema", cfg.Admin.EnsureSchema)
	})

	return r
}
