package security

import (
	"testing"
	"time"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenService_UnknownAlgorithm(t *testing.T) {
	if _, err := NewTokenService("secret", "XX999", time.Minute); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("user_1", map[string]any{"name": "Alice"}, 0)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != "user_1" {
		t.Fatalf("unexpected subject: %v", claims["sub"])
	}
	if name, _ := claims["name"].(string); name != "Alice" {
		t.Fatalf("extra claim not carried: %v", claims["name"])
	}
}

func TestAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("user_1", nil, time.Minute)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	// Move the verifier's clock past the expiry.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := svc.VerifyAccessToken(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAccessToken_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t)
	verifier, err := NewTokenService("other-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := issuer.IssueAccessToken("user_1", nil, 0)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := verifier.VerifyAccessToken(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessToken_MissingSubject(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("", nil, 0)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := svc.VerifyAccessToken(token); err != domain.ErrMissingSubject {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}

func TestRefreshToken_UniqueAndDigestable(t *testing.T) {
	svc := newTestTokenService(t)

	first, err := svc.IssueRefreshToken()
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	second, err := svc.IssueRefreshToken()
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct refresh tokens")
	}

	if svc.Digest(first) != svc.Digest(first) {
		t.Fatalf("expected digest to be deterministic")
	}
	if svc.Digest(first) == svc.Digest(second) {
		t.Fatalf("expected distinct tokens to have distinct digests")
	}
	if svc.Digest(first) == first {
		t.Fatalf("digest must not equal the raw token")
	}
}

func TestResetToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueResetToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	email, err := svc.VerifyResetToken(token)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if email != "alice@example.com" {
		t.Fatalf("unexpected subject: %s", email)
	}
}

func TestResetToken_Expired(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueResetToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := svc.VerifyResetToken(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after 15 minutes, got %v", err)
	}
}

func TestAccessToken_RejectsResetToken(t *testing.T) {
	svc := newTestTokenService(t)

	// A reset token is signed with the same secret but must never open the
	// authenticated surface.
	token, err := svc.IssueResetToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}
	if _, err := svc.VerifyAccessToken(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for reset token, got %v", err)
	}
}

func TestResetToken_RejectsAccessToken(t *testing.T) {
	svc := newTestTokenService(t)

	// An access token has no purpose claim and must not pass as a reset token.
	token, err := svc.IssueAccessToken("alice@example.com", nil, 0)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := svc.VerifyResetToken(token); err != domain.ErrInvalidPurpose {
		t.Fatalf("expected ErrInvalidPurpose, got %v", err)
	}
}

func TestEmailDigest_Normalizes(t *testing.T) {
	a := EmailDigest("salt", "Alice@Example.com ")
	b := EmailDigest("salt", "alice@example.com")
	if a != b {
		t.Fatalf("expected case/whitespace-insensitive digest")
	}
	if EmailDigest("other-salt", "alice@example.com") == b {
		t.Fatalf("expected different salts to yield different digests")
	}
}
