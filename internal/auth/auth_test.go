// server/internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "chef-ABC12345", "chef@example.com", "chef", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(secret, token)
	require.NoError(t, err)

	assert.Equal(t, "chef-ABC12345", claims.UserID)
	assert.Equal(t, "chef@example.com", claims.Email)
	assert.Equal(t, "chef", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("secret-a"), "customer-1", "a@example.com", "customer", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
