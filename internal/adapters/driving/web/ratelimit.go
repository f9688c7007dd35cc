package web

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/viewsync/internal/logger"
)

const (
	// DefaultWriteRate is the sustained number of mutating requests per second.
	// Hover posts from pointer movement are the main source of bursts.
	DefaultWriteRate = 60.0

	// DefaultWriteBurst is the token bucket size for mutating requests.
	DefaultWriteBurst = 120
)

// Option configures a Server.
type Option func(*Server)

// WithWriteLimit throttles POST requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithWriteLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// throttle rejects mutating requests once the bucket is empty.
// Reads and the event stream are never throttled.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && r.Method == http.MethodPost && !s.limiter.Allow() {
			logger.WithFields(logger.Fields{"path": r.URL.Path}).Debug("write throttled")
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
