package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

const (
	resetPurpose = "reset_password"
	resetTTL     = 15 * time.Minute

	// refreshTokenBytes is the entropy of an opaque refresh token before encoding.
	refreshTokenBytes = 64
)

// TokenService issues and verifies signed bearer tokens and opaque refresh
// tokens. It is stateless; refresh tokens are persisted elsewhere as digests.
type TokenService struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration

	now func() time.Time
}

// NewTokenService builds a TokenService. The algorithm must name a signing
// method registered with the jwt library (e.g. HS256).
func NewTokenService(secret, algorithm string, accessTTL time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token service: unknown signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	return &TokenService{
		secret:    []byte(secret),
		method:    method,
		accessTTL: accessTTL,
		now:       time.Now,
	}, nil
}

// IssueAccessToken signs claims {sub, ...extra, exp}. A non-positive ttl
// falls back to the configured access-token lifetime.
func (s *TokenService) IssueAccessToken(subject string, extra map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.accessTTL
	}

	claims := jwt.MapClaims{"sub": subject}
	for k, v := range extra {
		claims[k] = v
	}
	claims["exp"] = jwt.NewNumericDate(s.now().Add(ttl))

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// VerifyAccessToken checks signature, expiry and algorithm, and requires a
// subject claim. Returns the full claims set. Special-purpose tokens (reset
// tokens carry a purpose claim) never verify as access tokens.
func (s *TokenService) VerifyAccessToken(token string) (jwt.MapClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if _, special := claims["purpose"]; special {
		return nil, domain.ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub == "" {
		return nil, domain.ErrMissingSubject
	}
	return claims, nil
}

// IssueRefreshToken returns a cryptographically random URL-safe string.
// The raw value goes to the client; only Digest(value) is stored.
func (s *TokenService) IssueRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Digest returns the deterministic sha256 hex digest of a token.
func (s *TokenService) Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IssueResetToken signs a short-lived password-reset token for email.
// The purpose claim prevents its reuse as a general access token.
func (s *TokenService) IssueResetToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     email,
		"purpose": resetPurpose,
		"exp":     jwt.NewNumericDate(s.now().Add(resetTTL)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// VerifyResetToken validates a reset token and returns the email subject.
func (s *TokenService) VerifyResetToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetPurpose {
		return "", domain.ErrInvalidPurpose
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrMissingSubject
	}
	return sub, nil
}

func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// EmailDigest returns the salted sha256 hex digest of an email address,
// used as the lookup key so queries never run on the raw address.
func EmailDigest(salt, email string) string {
	sum := sha256.Sum256([]byte(salt + strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
