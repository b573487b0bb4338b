package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/l3hner/hauspilot/model"
)

var testSecret = []byte("test-secret")

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken(testSecret, "u1", "lena@example.com")
	require.NoError(t, err)

	claims := &model.AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "lena@example.com", claims.Email)
	require.Equal(t, "hauspilot", claims.Issuer)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateAccessToken(testSecret, "u1", "lena@example.com")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &model.AccessClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := CreateRefreshToken(testSecret, "u1")
	require.NoError(t, err)

	claims := &model.RefreshClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "u1", claims.UserID)
}

func TestRefreshTokenHashCompare(t *testing.T) {
	token, err := CreateRefreshToken(testSecret, "u1")
	require.NoError(t, err)

	hashed, err := HashRefreshToken(token)
	require.NoError(t, err)
	require.NotEqual(t, token, hashed)

	require.NoError(t, CompareRefreshToken(hashed, token))
	require.Error(t, CompareRefreshToken(hashed, token+"x"))
}
