package services

import (
	"context"
	"encoding/json"
	"log"

	"nagarsetu-backend/internal/auth"
	"nagarsetu-backend/internal/cache"
	"nagarsetu-backend/internal/models"

	"github.com/pquerna/otp/totp"
)

const totpIssuer = "Nagar-Setu"

type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	SetTOTPSecret(ctx context.Context, id int, secret string) error
	EnableTOTP(ctx context.Context, id int) error
}

type DirectoryStore interface {
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
}

type StatusEventStore interface {
	ListByRef(ctx context.Context, recordType, ref string) ([]*models.StatusEvent, error)
}

type AdminService struct {
	Admins     AdminStore
	Users      DirectoryStore
	Complaints ComplaintStore
	Requests   RequestStore
	Events     StatusEventStore
	JWT        *auth.JWTManager
}

func NewAdminService(admins AdminStore, users DirectoryStore, complaints ComplaintStore,
	requests RequestStore, events StatusEventStore, jwt *auth.JWTManager) *AdminService {
	return &AdminService{
		Admins:     admins,
		Users:      users,
		Complaints: complaints,
		Requests:   requests,
		Events:     events,
		JWT:        jwt,
	}
}

// EnsureDefaultAdmin seeds the bootstrap account on first start so the
// portal is usable before any operator onboarding. The password is hashed
// before it touches the database.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	if _, err := s.Admins.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := s.Admins.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("[Admin] Seeded default admin account %s", email)
	return nil
}

// LoginResult is the outcome of the password step. When the account has
// two-factor enabled, Token is empty and TempToken must be exchanged via
// VerifyTOTPLogin.
type LoginResult struct {
	Token       string        `json:"token,omitempty"`
	Requires2FA bool          `json:"requires_2fa"`
	TempToken   string        `json:"temp_token,omitempty"`
	Admin       *models.Admin `json:"admin,omitempty"`
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if admin.TOTPEnabled {
		temp, err := s.JWT.GenerateTempToken(admin)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Requires2FA: true, TempToken: temp}, nil
	}

	token, err := s.JWT.GenerateAdminToken(admin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

// SetupTOTP generates a fresh secret for the account and returns the
// otpauth URL for authenticator apps. The secret stays inactive until a
// valid code is confirmed through EnableTOTP.
func (s *AdminService) SetupTOTP(ctx context.Context, adminID int, email string) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Admins.SetTOTPSecret(ctx, adminID, key.Secret()); err != nil {
		return nil, err
	}
	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		URL:         key.URL(),
		Issuer:      totpIssuer,
		AccountName: email,
	}, nil
}

// EnableTOTP confirms the pending secret with a live code and switches
// two-factor on for the account.
func (s *AdminService) EnableTOTP(ctx context.Context, email, code string) error {
	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return ErrAdminNotFound
	}
	if admin.TOTPSecret == "" {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, admin.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.Admins.EnableTOTP(ctx, admin.ID)
}

// VerifyTOTPLogin completes a two-factor login: it exchanges the temp token
// from the password step plus a valid authenticator code for a full session
// token.
func (s *AdminService) VerifyTOTPLogin(ctx context.Context, tempToken, code string) (*LoginResult, error) {
	claims, err := s.JWT.ValidateAdminToken(tempToken, true)
	if err != nil || !claims.Temp {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.Admins.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	if admin.TOTPSecret == "" {
		return nil, ErrNoTOTPSecret
	}
	if !totp.Validate(code, admin.TOTPSecret) {
		return nil, ErrInvalidTOTPCode
	}

	token, err := s.JWT.GenerateAdminToken(admin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Users.List(ctx)
}

// DashboardStats summarises the triage workload for the admin landing page.
type DashboardStats struct {
	TotalUsers        int `json:"totalUsers"`
	PendingComplaints int `json:"pendingComplaints"`
	PendingRequests   int `json:"pendingRequests"`
}

// Stats is served from the cache when possible; the counts only need to be
// roughly current.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.AdminStatsKey); ok {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	complaints, err := s.Complaints.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	requests, err := s.Requests.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalUsers:        users,
		PendingComplaints: complaints,
		PendingRequests:   requests,
	}
	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.AdminStatsKey, data, cache.AdminStatsTTL)
	}
	return stats, nil
}

// Timeline returns the full status history of a complaint, service request
// or bill, oldest first.
func (s *AdminService) Timeline(ctx context.Context, recordType, ref string) ([]*models.StatusEvent, error) {
	return s.Events.ListByRef(ctx, recordType, ref)
}
