package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned after registration, login and refresh.
// RefreshToken is the raw opaque value; it is never persisted server-side.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService defines authentication use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Refresh exchanges a raw refresh token for a new token pair, rotating
	// the stored digest.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	// ForgotPassword issues a reset token when the account exists. It never
	// reveals whether the address is registered.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	// CurrentUser resolves a bearer token into an identity, using the cached
	// name claim when present and falling back to a single lookup otherwise.
	CurrentUser(ctx context.Context, accessToken string) (*domain.CurrentUser, error)
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, error)
}
