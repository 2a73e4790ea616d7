package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClockTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"morning", "9:30 AM", "09:30"},
		{"afternoon", "5:30 PM", "17:30"},
		{"no space before meridiem", "5:30PM", "17:30"},
		{"lowercase", "11:15 pm", "23:15"},
		{"noon stays 12", "12:00 PM", "12:00"},
		{"midnight becomes 00", "12:00 AM", "00:00"},
		{"already padded morning", "09:05 AM", "09:05"},
		{"leading whitespace", "  10:45 AM", "10:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeClockTime(tt.input))
		})
	}
}

func TestNormalizeClockTimeIdempotent(t *testing.T) {
	// Normalizing an already-24-hour string again must be a no-op: there are
	// no meridiem letters left to shift the hour by.
	for _, token := range []string{"9:30 AM", "5:30 PM", "12:00 AM", "12:00 PM"} {
		once := normalizeClockTime(token)
		assert.Equal(t, once, normalizeClockTime(once), "input %q", token)
	}
}
