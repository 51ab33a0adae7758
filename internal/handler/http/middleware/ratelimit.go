package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"betpress/internal/handler/http/respond"
	"betpress/pkg/ratelimit"
)

// RateLimit enforces a per-client-IP request budget using the shared
// limiter. Denied requests get a 429 with Retry-After; every response
// carries the X-RateLimit-* headers.
type RateLimit struct {
	Limiter   *ratelimit.Limiter
	Extractor IPExtractor
	Logger    *slog.Logger
}

func (m *RateLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := m.Extractor.ExtractIP(r)
		if err != nil {
			m.Logger.Warn("rate limit: cannot extract client IP",
				slog.String("remote_addr", r.RemoteAddr), slog.Any("error", err))
			respond.Error(w, http.StatusBadRequest, "cannot identify client")
			return
		}

		decision, err := m.Limiter.Check(r.Context(), ip, r.URL.Path)
		if err != nil {
			// Fail open: a broken limiter store must not take the API down.
			m.Logger.Error("rate limit check failed", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			respond.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
