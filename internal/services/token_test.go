package services

import (
	"testing"

	"gamehub/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	service := newTestTokenService()
	userID := uuid.New()

	token, err := service.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestTokenService_Validate_RejectsGarbage(t *testing.T) {
	service := newTestTokenService()

	_, err := service.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_RejectsWrongSecret(t *testing.T) {
	service := newTestTokenService()
	other := NewTokenService(config.Config{
		JWTSecret:      "different-secret",
		JWTExpiryHours: 1,
	})

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_RejectsExpired(t *testing.T) {
	service := NewTokenService(config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: -1,
	})

	token, err := service.Issue(uuid.New())
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_PasswordHashing(t *testing.T) {
	service := newTestTokenService()

	hash, err := service.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, service.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, service.VerifyPassword(hash, "wrong password"))
}
