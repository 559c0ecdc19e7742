package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// bcrypt only considers the first 72 bytes of input. Longer passwords are
// truncated before hashing; changing this would break verification of
// previously issued hashes.
const maxPasswordBytes = 72

// HashPassword salts and hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	trimmed := strings.TrimSpace(password)
	if trimmed == "" {
		return "", domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword(truncate(trimmed), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches the stored hash.
// It never fails: malformed hashes and encoding problems verify as false.
func VerifyPassword(candidate, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), truncate(strings.TrimSpace(candidate)))
	return err == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
