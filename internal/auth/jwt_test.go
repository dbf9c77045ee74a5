package auth

import (
	"testing"

	"nagarsetu-backend/internal/config"
	"nagarsetu-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "nagarsetu-test"
	return cfg
}

func TestAdminTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	admin := &models.Admin{ID: 1, Email: "admin@test.com", Role: "admin"}

	token, err := m.GenerateAdminToken(admin)
	require.NoError(t, err)

	claims, err := m.ValidateAdminToken(token, false)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.AdminID)
	assert.Equal(t, "admin@test.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.Temp)
}

func TestTempTokenRejectedWithoutAllowTemp(t *testing.T) {
	m := NewJWTManager(testConfig())
	admin := &models.Admin{ID: 1, Email: "admin@test.com", Role: "admin"}

	temp, err := m.GenerateTempToken(admin)
	require.NoError(t, err)

	_, err = m.ValidateAdminToken(temp, false)
	assert.Error(t, err)

	claims, err := m.ValidateAdminToken(temp, true)
	require.NoError(t, err)
	assert.True(t, claims.Temp)
}

func TestCitizenTokenNotValidAsAdmin(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateCitizenToken(&models.User{ID: 2, Phone: "9876543210", Name: "Sita"})
	require.NoError(t, err)

	claims, err := m.ValidateCitizenToken(token)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", claims.Phone)

	_, err = m.ValidateAdminToken(token, false)
	assert.Error(t, err)
}

func TestTokenWithWrongSecretRejected(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateAdminToken(&models.Admin{ID: 1, Email: "admin@test.com"})
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateAdminToken(token, false)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, VerifyPassword(hash, "admin123"))
	assert.False(t, VerifyPassword(hash, "admin124"))
}
