package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("u1", "ada@example.com", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.VerifyJWTToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)

	ttl := svc.RemainingTTL(token.AccessToken)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
}

func TestJWTRejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	other, err := NewJWTService("other-secret", time.Hour).ToJWT("u1", "ada@example.com", "")
	require.NoError(t, err)
	_, err = svc.VerifyJWTToken(other)
	assert.Error(t, err)

	expired, err := NewJWTService("test-secret", -time.Minute).ToJWT("u1", "ada@example.com", "")
	require.NoError(t, err)
	_, err = svc.VerifyJWTToken(expired)
	assert.Error(t, err)
	assert.Zero(t, svc.RemainingTTL(expired))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		Email:            "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "epsilon"},
	})
	signed, err := noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyJWTToken(signed)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Token abc"} {
		_, err := ExtractTokenFromHeader(header)
		assert.Error(t, err, header)
	}
}
