package models

import "time"

// Record types for status events.
const (
	RecordTypeComplaint      = "complaint"
	RecordTypeServiceRequest = "service_request"
	RecordTypeBill           = "bill"
)

// StatusEvent is one entry in the append-only status audit log. Events are
// written in the same transaction as the status mutation they record, so the
// log never disagrees with the record.
type StatusEvent struct {
	ID         int       `json:"id"`
	RecordType string    `json:"recordType"`
	Ref        string    `json:"ref"` // SRN, or bill id as string
	Status     string    `json:"status"`
	Remarks    string    `json:"remarks"`
	Actor      string    `json:"actor"` // "citizen", "admin:<email>", "system"
	CreatedAt  time.Time `json:"createdAt"`
}
