// Package types provides type definitions for structured data shared across
// the gearshift system.
package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/gearshift/internal/schedule"
)

// Session statuses.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Shift is a reconciled shift record ready for review, storage, and export.
// The ID is a session-scoped UUID used only for list-editing identity in the
// review step; it carries no meaning outside its session.
type Shift struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`         // YYYY-MM-DD
	StartTime   string    `json:"start_time"`   // HH:MM, 24-hour
	EndTime     string    `json:"end_time"`     // HH:MM, 24-hour
	Title       string    `json:"title"`
	SourceIndex int       `json:"source_index"` // which screenshot it came from
}

// FromCandidate promotes a reconciled candidate to a stored shift record.
func FromCandidate(c schedule.Candidate) Shift {
	return Shift{
		ID:          uuid.New(),
		Date:        c.Date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Title:       c.Title,
		SourceIndex: c.SourceIndex,
	}
}

// ImageReport records what one screenshot contributed to a session, for
// provenance display in the review step.
type ImageReport struct {
	Index      int     `json:"index"`
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Shifts     int     `json:"shifts"`
}

// Session is one upload-process-review-export workflow over a batch of
// screenshots.
type Session struct {
	ID          uuid.UUID     `json:"id"`
	Status      string        `json:"status"`
	Shifts      []Shift       `json:"shifts"`
	Warnings    []string      `json:"warnings,omitempty"`
	Images      []ImageReport `json:"images,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}
