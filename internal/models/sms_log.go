package models

import "time"

// SMS message types and statuses.
const (
	SMSTypeOTP          = "otp"
	SMSTypeComplaint    = "complaint"
	SMSTypeStatusUpdate = "status_update"
	SMSTypeBill         = "bill"

	SMSStatusSent   = "sent"
	SMSStatusFailed = "failed"
)

// SMSLog records every outbound SMS attempt, including swallowed failures.
type SMSLog struct {
	ID           int       `json:"id"`
	Phone        string    `json:"phone"`
	MessageType  string    `json:"message_type"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
