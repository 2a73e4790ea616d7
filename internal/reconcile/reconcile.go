// Package reconcile merges shift candidates extracted from multiple
// overlapping screenshots into one deduplicated, chronologically ordered
// list, with a per-image diagnostic for screenshots that yielded nothing.
package reconcile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/gearshift/internal/schedule"
)

// ConfidenceThreshold separates "the OCR could not read this image at all"
// from "the image was readable but contained no shifts" when wording the
// per-image warning. Scores run 0-100.
const ConfidenceThreshold = 30

// ErrNothingRecognized signals that no image produced a shift or even a
// warning. Callers must treat this as a hard failure distinct from an empty
// shift list, so a UI can show an actionable message instead of a blank
// screen.
var ErrNothingRecognized = errors.New("no schedule data could be recognized in any image")

// Image is one screenshot's contribution to a session: the candidates the
// classifier derived from its transcript plus the OCR confidence score for
// the image as a whole.
type Image struct {
	Index      int
	Confidence float64
	Candidates []schedule.Candidate
}

// Result is the reconciled output for one session.
type Result struct {
	Shifts   []schedule.Candidate
	Warnings []string
}

// Reconcile deduplicates and orders the candidates from every image of one
// session. A shift's identity is (date, start, end); the title is excluded
// because overlapping screenshots of the same shift often differ in OCR
// noise there. The first occurrence wins and later duplicates are dropped
// whole, never merged. Output is ordered ascending by (date, start), which
// is total given the zero-padded forms the classifier emits.
func Reconcile(images []Image) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	for _, img := range images {
		if len(img.Candidates) == 0 {
			res.Warnings = append(res.Warnings, emptyImageWarning(img))
			continue
		}
		for _, c := range img.Candidates {
			if seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			c.SourceIndex = img.Index
			res.Shifts = append(res.Shifts, c)
		}
	}

	sort.SliceStable(res.Shifts, func(i, j int) bool {
		a, b := res.Shifts[i], res.Shifts[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})

	if len(res.Shifts) == 0 && len(res.Warnings) == 0 {
		return nil, ErrNothingRecognized
	}
	return res, nil
}

// emptyImageWarning words the zero-candidate diagnostic for one image. Low
// OCR confidence usually means the upload was not a schedule screenshot at
// all (a photo, a different app screen); decent confidence with no shifts
// means the text was readable but nothing in it parsed as a shift.
func emptyImageWarning(img Image) string {
	if img.Confidence < ConfidenceThreshold {
		return fmt.Sprintf("Screenshot %d could not be read and may not be a schedule screenshot", img.Index+1)
	}
	return fmt.Sprintf("Screenshot %d was readable but contained no shifts", img.Index+1)
}
