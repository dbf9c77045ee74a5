package models

import "time"

// OTP purposes.
const (
	OTPPurposeRegister = "register"
	OTPPurposeLogin    = "login"
)

// OTPCode is a pending one-time password. Only a SHA-256 hash of the code is
// stored; the plaintext exists only in the SMS.
type OTPCode struct {
	ID        int
	Phone     string
	CodeHash  string
	Purpose   string
	ExpiresAt time.Time
	Attempts  int
	Verified  bool
	CreatedAt time.Time
}
