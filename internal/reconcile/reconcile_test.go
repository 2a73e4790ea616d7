package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gearshift/internal/schedule"
)

func candidate(date, start, end, title string) schedule.Candidate {
	return schedule.Candidate{Date: date, StartTime: start, EndTime: end, Title: title}
}

func TestReconcileDeduplicatesAcrossImages(t *testing.T) {
	// Overlapping screenshots show the same shift with different OCR noise
	// in the title; identity is (date, start, end) and the first image wins.
	images := []Image{
		{Index: 0, Confidence: 90, Candidates: []schedule.Candidate{
			candidate("2026-02-20", "09:30", "17:30", "Hardgoods - Cycling"),
		}},
		{Index: 1, Confidence: 85, Candidates: []schedule.Candidate{
			candidate("2026-02-20", "09:30", "17:30", "Hardgocds - Cycl1ng"),
			candidate("2026-02-21", "10:00", "17:30", "Hardgoods - Action Sports"),
		}},
	}

	res, err := Reconcile(images)

	require.NoError(t, err)
	require.Len(t, res.Shifts, 2)
	assert.Equal(t, "Hardgoods - Cycling", res.Shifts[0].Title)
	assert.Equal(t, 0, res.Shifts[0].SourceIndex)
	assert.Equal(t, 1, res.Shifts[1].SourceIndex)
	assert.Empty(t, res.Warnings)
}

func TestReconcileOrdersByDateThenStart(t *testing.T) {
	images := []Image{
		{Index: 0, Confidence: 90, Candidates: []schedule.Candidate{
			candidate("2026-03-01", "08:00", "12:00", "A"),
			candidate("2026-02-20", "14:00", "18:00", "B"),
			candidate("2026-02-20", "09:30", "13:00", "C"),
		}},
	}

	res, err := Reconcile(images)

	require.NoError(t, err)
	require.Len(t, res.Shifts, 3)
	for i := 1; i < len(res.Shifts); i++ {
		prev, cur := res.Shifts[i-1], res.Shifts[i]
		assert.LessOrEqual(t, prev.Date+prev.StartTime, cur.Date+cur.StartTime)
	}
	assert.Equal(t, "C", res.Shifts[0].Title)
	assert.Equal(t, "B", res.Shifts[1].Title)
	assert.Equal(t, "A", res.Shifts[2].Title)
}

func TestReconcileIsAProjection(t *testing.T) {
	images := []Image{
		{Index: 0, Confidence: 90, Candidates: []schedule.Candidate{
			candidate("2026-02-20", "09:30", "17:30", "Cycling"),
			candidate("2026-02-21", "10:00", "17:30", "Action Sports"),
			candidate("2026-02-20", "09:30", "17:30", "Cycling"),
		}},
	}

	first, err := Reconcile(images)
	require.NoError(t, err)
	require.Len(t, first.Shifts, 2)

	// Running reconcile on its own output removes nothing further.
	second, err := Reconcile([]Image{{Index: 0, Confidence: 90, Candidates: first.Shifts}})
	require.NoError(t, err)
	assert.Equal(t, first.Shifts, second.Shifts)
}

func TestReconcileWarnsPerEmptyImage(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       string
	}{
		{"low confidence reads as unreadable", 12, "Screenshot 1 could not be read and may not be a schedule screenshot"},
		{"decent confidence reads as no shifts", 74, "Screenshot 1 was readable but contained no shifts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile([]Image{{Index: 0, Confidence: tt.confidence}})

			require.NoError(t, err)
			assert.Empty(t, res.Shifts)
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, tt.want, res.Warnings[0])
		})
	}
}

func TestReconcileMixedSuccessAndFailure(t *testing.T) {
	images := []Image{
		{Index: 0, Confidence: 90, Candidates: []schedule.Candidate{
			candidate("2026-02-20", "09:30", "17:30", "Cycling"),
		}},
		{Index: 1, Confidence: 8},
	}

	res, err := Reconcile(images)

	require.NoError(t, err)
	assert.Len(t, res.Shifts, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Screenshot 2")
}

func TestReconcileNothingRecognized(t *testing.T) {
	_, err := Reconcile(nil)
	assert.ErrorIs(t, err, ErrNothingRecognized)
}
