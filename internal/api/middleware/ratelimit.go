package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Limiter abstracts the rate-limit counter store (Redis in production).
type Limiter interface {
	Allow(ctx context.Context, ip string, limit int) (bool, error)
}

// RateLimit caps mutating requests per caller IP per minute. The limiter
// fails open: a store error lets the request through with a warning, so a
// Redis outage never takes the API down with it.
func RateLimit(limiter Limiter, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if perMinute <= 0 {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), c.RealIP(), perMinute)
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
