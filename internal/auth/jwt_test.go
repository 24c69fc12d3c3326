package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", time.Hour, 24*time.Hour, "opsdash", "opsdash")
}

func TestGenerateAndValidateTokens(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(42, "finance")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	tok, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "finance", claims["role"])

	rtok, err := a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, rtok.Valid)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(7, "viewer")
	require.NoError(t, err)

	// Signed with different secrets, so they must not cross-validate.
	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", -time.Minute, time.Hour, "opsdash", "opsdash")

	access, _, err := a.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}
