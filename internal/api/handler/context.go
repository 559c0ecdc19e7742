package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: a non-empty id proves the
// middleware ran.
func ctxUser(c echo.Context) (domain.CurrentUser, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return domain.CurrentUser{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get("user_name").(string)
	return domain.CurrentUser{ID: id, Name: name}, nil
}
