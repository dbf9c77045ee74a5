package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/sms"
	"nagarsetu-backend/internal/timeutil"
)

const (
	OTPLength        = 6
	OTPExpiryMinutes = 5
	MaxOTPAttempts   = 3

	// A phone may request at most this many codes per hour. 0 disables.
	MaxOTPPerHour = 5
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByPhoneOrAadhaar(ctx context.Context, query string) (*models.User, error)
}

type OTPStore interface {
	Create(ctx context.Context, otp *models.OTPCode) error
	GetLatest(ctx context.Context, phone string) (*models.OTPCode, error)
	IncrementAttempts(ctx context.Context, id int) error
	MarkVerified(ctx context.Context, id int) error
	CountRecentRequests(ctx context.Context, phone string, window time.Duration) (int, error)
}

type OTPService struct {
	Users UserStore
	Codes OTPStore
	SMS   sms.Provider
}

func NewOTPService(users UserStore, codes OTPStore, smsProvider sms.Provider) *OTPService {
	return &OTPService{Users: users, Codes: codes, SMS: smsProvider}
}

// GenerateCode creates a secure 6-digit OTP code.
func (s *OTPService) GenerateCode() string {
	max := big.NewInt(999999)
	n, _ := rand.Int(rand.Reader, max)
	return fmt.Sprintf("%06d", n.Int64())
}

// SendOTP checks registration state for the requested flow, then issues and
// delivers a code. Registration requires the phone and Aadhaar to be unused;
// login requires an existing account.
func (s *OTPService) SendOTP(ctx context.Context, req *models.SendOTPRequest) error {
	switch req.Type {
	case models.OTPPurposeRegister:
		if existing, _ := s.Users.GetByPhoneOrAadhaar(ctx, req.PhoneNumber); existing != nil {
			return ErrAlreadyRegistered
		}
		if req.Aadhaar != "" {
			if existing, _ := s.Users.GetByPhoneOrAadhaar(ctx, req.Aadhaar); existing != nil {
				return ErrAlreadyRegistered
			}
		}
	case models.OTPPurposeLogin:
		if _, err := s.Users.GetByPhone(ctx, req.PhoneNumber); err != nil {
			return ErrUserNotFound
		}
	default:
		return fmt.Errorf("unknown OTP type %q", req.Type)
	}

	if MaxOTPPerHour > 0 {
		count, err := s.Codes.CountRecentRequests(ctx, req.PhoneNumber, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to check rate limit: %w", err)
		}
		if count >= MaxOTPPerHour {
			return ErrTooManyAttempts
		}
	}

	code := s.GenerateCode()
	otp := &models.OTPCode{
		Phone:     req.PhoneNumber,
		CodeHash:  hashCode(code),
		Purpose:   req.Type,
		ExpiresAt: timeutil.Now().Add(OTPExpiryMinutes * time.Minute),
	}
	if err := s.Codes.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	message := fmt.Sprintf("Your Nagar-Setu OTP is %s. Valid for %d minutes. Do not share this code with anyone.",
		code, OTPExpiryMinutes)
	if err := s.SMS.SendSMS(req.PhoneNumber, message, models.SMSTypeOTP); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyOTP checks the submitted code against the newest pending one. On
// success the register flow creates the user; the login flow loads it.
func (s *OTPService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.User, error) {
	otp, err := s.Codes.GetLatest(ctx, req.PhoneNumber)
	if err != nil {
		return nil, ErrOTPExpired
	}
	if otp.Attempts >= MaxOTPAttempts {
		return nil, ErrTooManyAttempts
	}

	if hashCode(req.Code) != otp.CodeHash {
		s.Codes.IncrementAttempts(ctx, otp.ID)
		return nil, ErrInvalidOTP
	}

	if err := s.Codes.MarkVerified(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("failed to consume OTP: %w", err)
	}

	if req.Type == models.OTPPurposeRegister {
		user := &models.User{
			Name:    req.Name,
			Phone:   req.PhoneNumber,
			Aadhaar: req.Aadhaar,
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	user, err := s.Users.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
