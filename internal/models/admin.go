package models

import "time"

// Admin is the portal operator account. Seeded at startup if absent; the
// password is stored as a bcrypt hash, never in plaintext.
type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totpEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TOTPSetupResponse returned when initiating two-factor setup.
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	URL         string `json:"url"` // otpauth:// URL for authenticator apps
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPCodeRequest carries a 6-digit authenticator code.
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// TOTPVerifyRequest completes a two-factor login.
type TOTPVerifyRequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}
