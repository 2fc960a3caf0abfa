package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/turtacn/VendorIQ/internal/infrastructure/database/redis"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// RateLimitMiddleware throttles per client IP against the Redis fixed-window
// counter. When the limiter itself is unavailable requests pass through.
type RateLimitMiddleware struct {
	limiter *redis.RateLimiter
	logger  logging.Logger
}

func NewRateLimitMiddleware(limiter *redis.RateLimiter, log logging.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: log}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		allowed, err := m.limiter.Allow(r.Context(), key)
		if err == nil && !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    string(errors.ErrCodeTooManyRequests),
				"message": "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
