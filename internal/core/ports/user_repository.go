package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their refresh
// tokens. Lookups run on the salted email digest, never the raw address.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmailDigest(ctx context.Context, digest string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByRefreshDigest(ctx context.Context, digest string) (*domain.User, error)

	AddRefreshToken(ctx context.Context, userID string, token domain.RefreshToken) error
	RemoveRefreshToken(ctx context.Context, userID, digest string) error
	ClearRefreshTokens(ctx context.Context, userID string) error

	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// UpdateFields applies a caller-supplied field mapping. Implementations
	// must pass it through the query sanitizer before touching the database.
	UpdateFields(ctx context.Context, userID string, fields map[string]any) (*domain.User, error)
}
