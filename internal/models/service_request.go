package models

import "time"

const DefaultRequestRemarks = "Document received and awaiting verification."

// ServiceRequest is a structured citizen form (connection application, name
// change, etc.) with free-form details and an optional uploaded PDF.
type ServiceRequest struct {
	ID          int               `json:"id"`
	SRN         string            `json:"srn"`
	UserID      *int              `json:"userId,omitempty"`
	FormType    string            `json:"formType"`
	Details     map[string]string `json:"details"`
	PDFPath     *string           `json:"pdfPath,omitempty"`
	Status      string            `json:"status"`
	Remarks     string            `json:"remarks"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// ContactPhone returns the phone number buried in the form details. The form
// configs are inconsistent about the field name, so all three are checked.
func (r *ServiceRequest) ContactPhone() string {
	for _, key := range []string{"contact_number", "phone", "phoneNumber"} {
		if v := r.Details[key]; v != "" {
			return v
		}
	}
	return ""
}

// RequestSummary is the slim row returned to citizens listing their requests.
type RequestSummary struct {
	SRN      string `json:"srn"`
	Status   string `json:"status"`
	FormType string `json:"formType"`
	Remarks  string `json:"remarks"`
}

// AdminUpdateStatusRequest mirrors UpdateStatusRequest but the admin services
// screen sends the new status under a different key.
type AdminUpdateStatusRequest struct {
	SRN       string `json:"srn"`
	NewStatus string `json:"newStatus"`
	Remarks   string `json:"remarks"`
}

// UserSearchRequest looks up a citizen and their requests by phone, Aadhaar,
// or as a fallback a bare SRN.
type UserSearchRequest struct {
	Query string `json:"query"`
}
