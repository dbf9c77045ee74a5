package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndOfDay(t *testing.T) {
	d, err := ParseInIST(DateLayout, "2026-09-15")
	require.NoError(t, err)

	end := EndOfDay(d)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())

	// A moment into the next day is after end of day.
	next := d.AddDate(0, 0, 1)
	assert.True(t, next.After(end))
}

func TestParseInISTUsesISTOffset(t *testing.T) {
	parsed, err := ParseInIST(DateTimeLayout, "2026-09-15 12:00:00")
	require.NoError(t, err)

	_, offset := parsed.Zone()
	assert.Equal(t, 5*3600+1800, offset)
}

func TestToIST(t *testing.T) {
	utc := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	ist := ToIST(utc)
	assert.Equal(t, 5, ist.Hour())
	assert.Equal(t, 30, ist.Minute())
	assert.True(t, utc.Equal(ist))
}
