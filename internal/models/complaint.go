package models

import "time"

// Complaint statuses offered by the admin UI. The storage layer does not
// restrict the set; any string an admin submits is stored as-is.
const (
	StatusPending            = "Pending"
	StatusUnderConsideration = "Under Consideration"
	StatusAssigned           = "Assigned to Department"
	StatusCompleted          = "Completed"
	StatusRejected           = "Rejected"
)

const DefaultComplaintRemarks = "Technician will be assigned shortly."

// Coordinates of the reported issue, as picked on the map.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Complaint struct {
	ID          int         `json:"id"`
	SRN         string      `json:"srn"`
	Citizen     string      `json:"citizen"`
	Phone       string      `json:"phone"`
	Dept        string      `json:"dept"`
	Category    string      `json:"category"`
	Status      string      `json:"status"`
	Date        string      `json:"date"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Remarks     string      `json:"remarks"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type SubmitComplaintRequest struct {
	Citizen     string      `json:"citizen"`
	Phone       string      `json:"phone"`
	Dept        string      `json:"dept"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Description string      `json:"description"`
}

// UpdateStatusRequest overwrites status and remarks for a record identified
// by SRN. Last writer wins; the prior state is kept only in status_events.
type UpdateStatusRequest struct {
	SRN     string `json:"srn"`
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}
