package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Bill due dates and
// receipt timestamps are civil dates in IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseInIST parses a time string in the IST location.
func ParseInIST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, IST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// EndOfDay returns 23:59:59.999999999 IST for the given time. A bill due on a
// date is payable without fine until the end of that civil day.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}

// Common layouts for IST formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
