package domain

import "time"

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// RefreshToken is the server-side record of an issued refresh token.
// Only the sha256 digest of the opaque value is ever stored.
type RefreshToken struct {
	Digest    string    `bson:"digest"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// User models a registered account.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	EmailDigest   string         `json:"-"`
	PasswordHash  string         `json:"-"`
	AuthProvider  string         `json:"auth_provider"`
	Avatar        string         `json:"avatar,omitempty"`
	EmailVerified bool           `json:"email_verified"`
	RefreshTokens []RefreshToken `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CurrentUser is the resolved identity attached to authenticated requests.
type CurrentUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
