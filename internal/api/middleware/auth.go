package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// CurrentUserResolver turns a bearer token into an authenticated identity.
type CurrentUserResolver interface {
	CurrentUser(ctx context.Context, accessToken string) (*domain.CurrentUser, error)
}

// Auth extracts the bearer token, resolves the current user and injects the
// identity into the request context.
func Auth(resolver CurrentUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.CurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", user.ID)
			c.Set("user_name", user.Name)

			return next(c)
		}
	}
}
