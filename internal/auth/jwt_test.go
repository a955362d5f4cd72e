package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"installment-backend/internal/config"
	"installment-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "installment-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	user := &models.User{ID: 7, Email: "client@example.com", Role: models.RoleClient}
	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "client@example.com", claims.Email)
	assert.Equal(t, models.RoleClient, claims.Role)
	assert.Equal(t, "installment-backend", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())

	user := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
	token, err := manager.GenerateToken(user)
	require.NoError(t, err)

	other := &config.Config{}
	other.JWT.Secret = "different-secret"
	other.JWT.ExpirationHours = 1
	other.JWT.Issuer = "installment-backend"

	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("client123")
	require.NoError(t, err)
	assert.NotEqual(t, "client123", hash)

	assert.True(t, VerifyPassword(hash, "client123"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
