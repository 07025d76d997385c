package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-feedback-server/config"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	config.Load()

	token, err := GenerateToken(12, "H1", "admin")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "H1", claims.HospitalID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	config.Load()
	token, err := GenerateToken(12, "H1", "patient")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	config.Load()

	_, err = VerifyToken(token)
	assert.Error(t, err)
}
