package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hashed)

	assert.True(t, VerifyPassword(hashed, "hunter2hunter2"))
	assert.False(t, VerifyPassword(hashed, "wrong-password"))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 60)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	sub, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", 60).Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", 60).Verify(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("test-secret"), lifetime: -time.Minute}

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}
