package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes gives a 64 character hex token.
const resetTokenBytes = 32

// RandomHex returns n random bytes from crypto/rand, hex encoded (2n characters).
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random token length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewResetToken returns a raw password reset token for the user and the hash to store.
func NewResetToken() (raw string, hash string, err error) {
	raw, err = RandomHex(resetTokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the SHA-256 hex digest of a raw reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
