package security

import (
	"strings"
	"testing"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatalf("expected password to be hashed")
	}
	if !VerifyPassword("s3cret-password", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Fatalf("expected non-matching password to fail")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := HashPassword("   "); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for whitespace-only, got %v", err)
	}
}

func TestHashPassword_TruncatesAt72Bytes(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	// Passwords identical in the first 72 bytes verify against the same hash.
	sameTail := strings.Repeat("a", 72) + "completely-different-tail"
	if !VerifyPassword(sameTail, hash) {
		t.Fatalf("expected 72-byte prefix match to verify")
	}

	differentPrefix := "b" + strings.Repeat("a", 99)
	if VerifyPassword(differentPrefix, hash) {
		t.Fatalf("expected different prefix to fail verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to verify as false")
	}
	if VerifyPassword("anything", "") {
		t.Fatalf("expected empty hash to verify as false")
	}
}
