package models

import (
	"strings"
	"time"
)

// TargetBroadcast addresses every citizen client; any other non-phone value
// is an audience tag (a utility name); a phone-shaped value addresses one
// citizen directly.
const TargetBroadcast = "all"

// TargetKind distinguishes the two uses of the notification target field.
type TargetKind int

const (
	TargetKindBroadcast TargetKind = iota
	TargetKindDirect
)

// NotificationTarget is the parsed form of the single wire-level target
// string: either a broadcast audience tag or one citizen's phone number.
type NotificationTarget struct {
	Kind     TargetKind
	Audience string // tag when Kind == TargetKindBroadcast
	Phone    string // number when Kind == TargetKindDirect
}

// ParseTarget classifies a raw target string. A string that is mostly digits
// (allowing a leading + and separators) is treated as a phone number;
// everything else is an audience tag.
func ParseTarget(raw string) NotificationTarget {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NotificationTarget{Kind: TargetKindBroadcast, Audience: TargetBroadcast}
	}

	digits := 0
	other := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0, r == ' ', r == '-':
		default:
			other++
		}
	}
	if digits >= 8 && other == 0 {
		return NotificationTarget{Kind: TargetKindDirect, Phone: s}
	}
	return NotificationTarget{Kind: TargetKindBroadcast, Audience: s}
}

// String renders the target back to its wire form.
func (t NotificationTarget) String() string {
	if t.Kind == TargetKindDirect {
		return t.Phone
	}
	return t.Audience
}

// Notification is an admin-authored broadcast message. There is no delivery
// or read tracking; clients poll the full list.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParsedTarget returns the tagged form of the stored target string.
func (n *Notification) ParsedTarget() NotificationTarget {
	return ParseTarget(n.Target)
}

type NotificationRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Target string `json:"target"`
}
