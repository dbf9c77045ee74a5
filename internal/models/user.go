package models

import "time"

// User is a registered citizen. Created once at OTP-verified registration;
// never updated or deleted in-app.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phoneNumber"`
	Aadhaar   string    `json:"aadhaar"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendOTPRequest starts registration or login.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Aadhaar     string `json:"aadhaar"`
	Type        string `json:"type"` // "register" or "login"
}

// VerifyOTPRequest completes registration or login.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Aadhaar     string `json:"aadhaar"`
	Type        string `json:"type"`
}
