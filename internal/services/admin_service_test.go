package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"nagarsetu-backend/internal/auth"
	"nagarsetu-backend/internal/config"
	"nagarsetu-backend/internal/models"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "nagarsetu-test"
	return auth.NewJWTManager(cfg)
}

func newAdminService(admins AdminStore, jwt *auth.JWTManager) *AdminService {
	return NewAdminService(admins, new(mockUserStore), new(mockComplaintStore),
		new(mockRequestStore), nil, jwt)
}

func seededAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.Admin{ID: 1, Email: "admin@test.com", PasswordHash: hash, Role: "admin"}
}

func TestAdminLoginSuccess(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	admins.On("GetByEmail", mock.Anything, "admin@test.com").
		Return(seededAdmin(t, "admin123"), nil)

	result, err := svc.Login(context.Background(), "admin@test.com", "admin123")
	require.NoError(t, err)
	assert.False(t, result.Requires2FA)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin@test.com", result.Admin.Email)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	admins.On("GetByEmail", mock.Anything, "admin@test.com").
		Return(seededAdmin(t, "admin123"), nil)

	_, err := svc.Login(context.Background(), "admin@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	admins.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, errors.New("no rows"))

	_, err := svc.Login(context.Background(), "nobody@test.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginWithTOTPEnabled(t *testing.T) {
	admins := new(mockAdminStore)
	jwt := testJWTManager(t)
	svc := newAdminService(admins, jwt)

	admin := seededAdmin(t, "admin123")
	admin.TOTPEnabled = true
	admin.TOTPSecret = "JBSWY3DPEHPK3PXP"
	admins.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	result, err := svc.Login(context.Background(), "admin@test.com", "admin123")
	require.NoError(t, err)
	assert.True(t, result.Requires2FA)
	assert.Empty(t, result.Token)
	require.NotEmpty(t, result.TempToken)

	// The temp token must not pass normal admin auth.
	_, err = jwt.ValidateAdminToken(result.TempToken, false)
	assert.Error(t, err)
}

func TestVerifyTOTPLoginCompletesSession(t *testing.T) {
	admins := new(mockAdminStore)
	jwt := testJWTManager(t)
	svc := newAdminService(admins, jwt)

	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: "admin@test.com"})
	require.NoError(t, err)

	admin := seededAdmin(t, "admin123")
	admin.TOTPEnabled = true
	admin.TOTPSecret = key.Secret()
	admins.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	temp, err := jwt.GenerateTempToken(admin)
	require.NoError(t, err)
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	result, err := svc.VerifyTOTPLogin(context.Background(), temp, code)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := jwt.ValidateAdminToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "admin@test.com", claims.Email)
}

func TestVerifyTOTPLoginRejectsFullToken(t *testing.T) {
	admins := new(mockAdminStore)
	jwt := testJWTManager(t)
	svc := newAdminService(admins, jwt)

	full, err := jwt.GenerateAdminToken(seededAdmin(t, "admin123"))
	require.NoError(t, err)

	_, err = svc.VerifyTOTPLogin(context.Background(), full, "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnableTOTPWithValidCode(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: "admin@test.com"})
	require.NoError(t, err)

	admin := seededAdmin(t, "admin123")
	admin.TOTPSecret = key.Secret()
	admins.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)
	admins.On("EnableTOTP", mock.Anything, 1).Return(nil)

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.EnableTOTP(context.Background(), "admin@test.com", code))
	admins.AssertExpectations(t)
}

func TestEnableTOTPWithoutSetup(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	admins.On("GetByEmail", mock.Anything, "admin@test.com").
		Return(seededAdmin(t, "admin123"), nil)

	err := svc.EnableTOTP(context.Background(), "admin@test.com", "123456")
	assert.ErrorIs(t, err, ErrNoTOTPSecret)
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	admins := new(mockAdminStore)
	svc := newAdminService(admins, testJWTManager(t))

	admins.On("GetByEmail", mock.Anything, "admin@test.com").Return(nil, errors.New("no rows")).Once()
	admins.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Admin) bool {
		return a.Email == "admin@test.com" &&
			a.PasswordHash != "admin123" &&
			auth.VerifyPassword(a.PasswordHash, "admin123")
	})).Return(nil).Once()

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin@test.com", "admin123"))

	// Second start finds the account and does not create again.
	admins.On("GetByEmail", mock.Anything, "admin@test.com").
		Return(seededAdmin(t, "admin123"), nil)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin@test.com", "admin123"))

	admins.AssertNumberOfCalls(t, "Create", 1)
}
