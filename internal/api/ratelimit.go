package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/ratelimit"
)

// rateLimitMiddleware limits requests per caller. Authenticated requests are
// keyed by identity so one caller cannot starve others behind the same NAT;
// anonymous ones fall back to the client IP. Must run after authMiddleware.
func rateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + getClientIP(r)
			if identity := IdentityFromContext(r.Context()); identity != "" {
				key = "id:" + identity
			}

			if !limiter.Allow(key) {
				logger.Warn("rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
				)
				writeRateLimited(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimited(w http.ResponseWriter) {
	const msg = "Too many requests. Please try again later."
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(APIErrorEnvelope{
		Version: EnvelopeVersion,
		Error:   msg,
		Code:    string(domainerrors.CodeRateLimited),
		Message: msg,
	})
}

// getClientIP extracts the client IP from the request.
// chi's RealIP middleware has already folded X-Forwarded-For and X-Real-IP
// into RemoteAddr.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
