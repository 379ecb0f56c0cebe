package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "quickcredit",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.HasRole(RoleCustomer))
	assert.Equal(t, "quickcredit", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken(uuid.New(), []string{RoleCustomer})
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "different-secret", Issuer: "quickcredit"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "someone-else", Expiration: time.Hour})
	require.NoError(t, err)
	token, err := issuer.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "quickcredit"})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
