package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendOTPRejectsRegisteredPhone(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	users.On("GetByPhoneOrAadhaar", mock.Anything, "9876543210").
		Return(&models.User{ID: 1, Phone: "9876543210"}, nil)

	err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		PhoneNumber: "9876543210",
		Type:        models.OTPPurposeRegister,
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestSendOTPLoginRequiresUser(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	users.On("GetByPhone", mock.Anything, "9000000000").Return(nil, errors.New("no rows"))

	err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		PhoneNumber: "9000000000",
		Type:        models.OTPPurposeLogin,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendOTPStoresHashAndDelivers(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	provider := &mockSMS{}
	svc := NewOTPService(users, codes, provider)

	users.On("GetByPhoneOrAadhaar", mock.Anything, mock.Anything).Return(nil, errors.New("no rows"))
	codes.On("CountRecentRequests", mock.Anything, "9123456780", time.Hour).Return(0, nil)

	var stored *models.OTPCode
	codes.On("Create", mock.Anything, mock.AnythingOfType("*models.OTPCode")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.OTPCode)
		}).Return(nil)

	err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		PhoneNumber: "9123456780",
		Aadhaar:     "123412341234",
		Type:        models.OTPPurposeRegister,
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Len(t, stored.CodeHash, 64, "SHA-256 hex digest")
	assert.True(t, stored.ExpiresAt.After(timeutil.Now()))

	require.Len(t, provider.Sent, 1)
	assert.NotContains(t, provider.Sent[0].Message, stored.CodeHash)
}

func TestSendOTPRateLimited(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	users.On("GetByPhoneOrAadhaar", mock.Anything, mock.Anything).Return(nil, errors.New("no rows"))
	codes.On("CountRecentRequests", mock.Anything, "9123456780", time.Hour).Return(MaxOTPPerHour, nil)

	err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		PhoneNumber: "9123456780",
		Type:        models.OTPPurposeRegister,
	})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestVerifyOTPWrongCodeIncrementsAttempts(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	codes.On("GetLatest", mock.Anything, "9123456780").Return(&models.OTPCode{
		ID:        3,
		Phone:     "9123456780",
		CodeHash:  hashCode("111111"),
		ExpiresAt: timeutil.Now().Add(time.Minute),
	}, nil)
	codes.On("IncrementAttempts", mock.Anything, 3).Return(nil)

	_, err := svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		PhoneNumber: "9123456780",
		Code:        "222222",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
	codes.AssertCalled(t, "IncrementAttempts", mock.Anything, 3)
}

func TestVerifyOTPTooManyAttempts(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	codes.On("GetLatest", mock.Anything, "9123456780").Return(&models.OTPCode{
		ID:       4,
		CodeHash: hashCode("111111"),
		Attempts: MaxOTPAttempts,
	}, nil)

	_, err := svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		PhoneNumber: "9123456780",
		Code:        "111111",
	})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestVerifyOTPRegisterCreatesUser(t *testing.T) {
	users := new(mockUserStore)
	codes := new(mockOTPStore)
	svc := NewOTPService(users, codes, &mockSMS{})

	codes.On("GetLatest", mock.Anything, "9123456780").Return(&models.OTPCode{
		ID:        5,
		Phone:     "9123456780",
		CodeHash:  hashCode("654321"),
		Purpose:   models.OTPPurposeRegister,
		ExpiresAt: timeutil.Now().Add(time.Minute),
	}, nil)
	codes.On("MarkVerified", mock.Anything, 5).Return(nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Phone == "9123456780" && u.Name == "Ramesh Kumar" && u.Aadhaar == "123412341234"
	})).Return(nil)

	user, err := svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		PhoneNumber: "9123456780",
		Code:        "654321",
		Name:        "Ramesh Kumar",
		Aadhaar:     "123412341234",
		Type:        models.OTPPurposeRegister,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Kumar", user.Name)
	users.AssertExpectations(t)
}
