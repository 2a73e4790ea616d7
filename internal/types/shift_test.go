package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gearshift/internal/schedule"
)

func TestFromCandidateAssignsUniqueIDs(t *testing.T) {
	c := schedule.Candidate{
		Date:        "2026-02-20",
		StartTime:   "09:30",
		EndTime:     "17:30",
		Title:       "Hardgoods - Cycling",
		SourceIndex: 1,
	}

	a := FromCandidate(c)
	b := FromCandidate(c)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "each record gets its own identity")
	assert.Equal(t, c.Date, a.Date)
	assert.Equal(t, c.StartTime, a.StartTime)
	assert.Equal(t, c.EndTime, a.EndTime)
	assert.Equal(t, c.Title, a.Title)
	assert.Equal(t, c.SourceIndex, a.SourceIndex)
}

func TestUpdateShiftRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateShiftRequest
		wantErr bool
	}{
		{"valid", UpdateShiftRequest{Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30", Title: "Cycling"}, false},
		{"bad date", UpdateShiftRequest{Date: "02/20/2026", StartTime: "09:30", EndTime: "17:30", Title: "Cycling"}, true},
		{"bad time", UpdateShiftRequest{Date: "2026-02-20", StartTime: "9:30 AM", EndTime: "17:30", Title: "Cycling"}, true},
		{"empty title", UpdateShiftRequest{Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSyncRequestValidate(t *testing.T) {
	assert.Error(t, (&SyncRequest{}).Validate())
	assert.NoError(t, (&SyncRequest{AccessToken: "ya29.token"}).Validate())
}
