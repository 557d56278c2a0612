package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	raw, hash, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashResetToken(raw))

	other, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}

func TestRandomHex(t *testing.T) {
	v, err := RandomHex(16)
	require.NoError(t, err)
	assert.Len(t, v, 32)

	_, err = RandomHex(0)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPasswordWithCost("Passw0rd", 4)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Passw0rd", hash))
	assert.False(t, CheckPasswordHash("passw0rd", hash))
	assert.False(t, CheckPasswordHash("Passw0rd", ""))
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("uid-1", "jane@example.com", "secret", time.Hour, "finsync")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := ParseAndValidateJWT(token, "secret", "finsync")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)

	_, err = ParseAndValidateJWT(token, "other", "finsync")
	assert.Error(t, err)
	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.Error(t, err)
}
