package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/focustrack/focus-tracker-api/internal/api/metrics"
)

// CounterStore abstracts the fixed-window counter backend (Redis).
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit caps requests per client IP within a fixed window. A store
// failure fails open: limiting is protection, not a correctness invariant.
func RateLimit(store CounterStore, scope string, limit int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:%s:%s", scope, c.RealIP())

			count, err := store.Incr(c.Request().Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if count > limit {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"too many requests from this IP, please try again later")
			}

			return next(c)
		}
	}
}
