package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

type stubResolver struct {
	user *domain.CurrentUser
	err  error

	gotToken string
}

func (r *stubResolver) CurrentUser(_ context.Context, accessToken string) (*domain.CurrentUser, error) {
	r.gotToken = accessToken
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{user: &domain.CurrentUser{ID: "user_1", Name: "Alice"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-access-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(resolver)(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user_1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("user_name") != "Alice" {
			t.Fatalf("user_name not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.gotToken != "some-access-token" {
		t.Fatalf("token not forwarded: %q", resolver.gotToken)
	}
}

func TestAuthMiddleware_LowercaseBearer(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{user: &domain.CurrentUser{ID: "user_1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(resolver)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("expected lowercase scheme accepted, got %v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(resolver)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{}

	for _, header := range []string{"Token abc", "Bearer", "just-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(resolver)(func(c echo.Context) error {
			t.Fatalf("should not reach next for %q", header)
			return nil
		})

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %q, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_ResolverError(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{err: domain.ErrInvalidToken}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(resolver)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
