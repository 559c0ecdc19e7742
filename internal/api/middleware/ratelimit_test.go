package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubLimiter struct {
	allow bool

	gotClient string
	gotRoute  string
}

func (l *stubLimiter) Allow(_ context.Context, clientID, route string) bool {
	l.gotClient, l.gotRoute = clientID, route
	return l.allow
}

func TestRateLimitMiddleware_Allows(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: true}

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/results", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/quiz/results")

	called := false
	handler := RateLimit(limiter)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if limiter.gotClient != "10.0.0.5" {
		t.Fatalf("expected client ip, got %q", limiter.gotClient)
	}
	if limiter.gotRoute != "/api/quiz/results" {
		t.Fatalf("expected route path, got %q", limiter.gotRoute)
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: false}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/auth/login")

	handler := RateLimit(limiter)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}
