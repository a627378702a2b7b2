package middleware

import (
	"net/http"
	"strconv"
	"time"

	"evacsim/pkg/logger"
	"evacsim/pkg/ratelimit"
)

// Служебные эндпоинты не лимитируем
var rateLimitExempt = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// RateLimit ограничивает частоту запросов по IP клиента.
// При недоступности лимитера запрос пропускается (fail-open).
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || rateLimitExempt[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := ratelimit.ClientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Log.Warn("Rate limiter unavailable, allowing request",
					"error", err,
					"client", key,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				retryAfter := time.Minute
				if info, infoErr := limiter.GetInfo(r.Context(), key); infoErr == nil {
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
					w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
					if until := time.Until(info.ResetAt); until > 0 {
						retryAfter = until
					}
				}

				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
