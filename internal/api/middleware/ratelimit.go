package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/api/metrics"
)

// Limiter is the sliding-window rate-limit contract. Both the in-memory and
// the Redis-backed implementations satisfy it.
type Limiter interface {
	Allow(ctx context.Context, clientID, route string) bool
}

// RateLimit rejects requests over the per-(client, route) ceiling with 429.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if !limiter.Allow(c.Request().Context(), c.RealIP(), route) {
				metrics.RateLimitRejectionsTotal.WithLabelValues(route).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
