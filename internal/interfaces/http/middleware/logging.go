// Package middleware holds the HTTP middleware chain.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/prometheus"
)

// LoggingMiddleware logs one line per request and feeds the HTTP metrics.
type LoggingMiddleware struct {
	logger  logging.Logger
	metrics *prometheus.Metrics
}

func NewLoggingMiddleware(log logging.Logger, metrics *prometheus.Metrics) *LoggingMiddleware {
	return &LoggingMiddleware{logger: log, metrics: metrics}
}

type wrappedResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrappedResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &wrappedResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		if m.metrics != nil {
			m.metrics.ObserveHTTPRequest(r.Method, route, wrapped.status, elapsed)
		}
		m.logger.Info("http request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", wrapped.status),
			logging.Duration("duration", elapsed),
			logging.String("request_id", chimw.GetReqID(r.Context())),
			logging.String("remote", r.RemoteAddr),
		)
	})
}
