package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gearshift/internal/types"
)

func TestGenerate(t *testing.T) {
	shifts := []types.Shift{
		{Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30", Title: "Hardgoods - Cycling"},
		{Date: "2026-02-21", StartTime: "10:00", EndTime: "17:30", Title: "Hardgoods - Action Sports"},
	}

	out, err := Generate(shifts)

	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Hardgoods - Cycling")
	assert.Contains(t, out, "DTSTART:20260220T093000")
	assert.Contains(t, out, "DTEND:20260220T173000")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	// Floating local times: no UTC suffix on event times.
	assert.NotContains(t, out, "DTSTART:20260220T093000Z")
}

func TestGenerateStableUIDs(t *testing.T) {
	shifts := []types.Shift{
		{Date: "2026-02-20", StartTime: "09:30", EndTime: "13:00", Title: "Opening"},
		{Date: "2026-02-20", StartTime: "14:00", EndTime: "18:00", Title: "Closing"},
	}

	out, err := Generate(shifts)

	require.NoError(t, err)
	// Same day, different starts: two distinct UIDs, both reproducible.
	assert.Contains(t, out, "UID:gearshift-2026-02-20-0930@gearshift")
	assert.Contains(t, out, "UID:gearshift-2026-02-20-1400@gearshift")
}

func TestGenerateRejectsMalformedTimes(t *testing.T) {
	_, err := Generate([]types.Shift{
		{Date: "2026-02-20", StartTime: "9:30 AM", EndTime: "17:30", Title: "Bad"},
	})
	assert.Error(t, err)
}

func TestGenerateEmpty(t *testing.T) {
	out, err := Generate(nil)

	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
