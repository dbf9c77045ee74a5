package services

import "errors"

var (
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSRNNotFound        = errors.New("SRN not found")
	ErrBillNotFound       = errors.New("bill not found")
	ErrNoRecords          = errors.New("no records found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired or not requested")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidTOTPCode    = errors.New("invalid authenticator code")
	ErrNoTOTPSecret       = errors.New("two-factor setup not started")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrBillNotPaid        = errors.New("bill is not paid")
)
