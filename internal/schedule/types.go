// Package schedule reconstructs structured shift records from noisy,
// line-oriented OCR text recovered from work-schedule screenshots.
//
// The input text comes from photographed UKG mobile schedule screens and is
// inconsistently segmented and occasionally misrecognized. The classifier in
// this package walks the transcript line by line with a small amount of
// running state (current month/year, pending day number and label) and emits
// a candidate shift for every time range it can anchor to a fully resolved
// date. Lines it cannot resolve are skipped, never fatal.
package schedule

// DefaultTitle is used when no shift label can be recovered from the
// transcript.
const DefaultTitle = "Work Shift"

// Candidate represents one shift extracted from a single transcript, before
// cross-image deduplication.
type Candidate struct {
	Date        string `json:"date"`         // YYYY-MM-DD, zero-padded
	StartTime   string `json:"start_time"`   // HH:MM, 24-hour
	EndTime     string `json:"end_time"`     // HH:MM, 24-hour
	Title       string `json:"title"`        // never empty; falls back to DefaultTitle
	SourceIndex int    `json:"source_index"` // which screenshot produced this candidate
}

// Key returns the identity of the shift as seen by the reconciler. Title is
// deliberately excluded: overlapping screenshots of the same shift often
// carry different OCR noise in the label but refer to the same real-world
// shift.
func (c Candidate) Key() string {
	return c.Date + "|" + c.StartTime + "|" + c.EndTime
}

// Options configures parsing behavior that the original screenshots do not
// pin down. The department-path title rule (keep the trailing segments of a
// slash-separated path) is a heuristic tuned to one employer's path
// convention, so both the segment count and the join separator are
// configurable.
type Options struct {
	// TitlePathSegments is how many trailing segments of a slash-separated
	// department path are kept as the shift title.
	TitlePathSegments int
	// TitleJoin separates the kept path segments.
	TitleJoin string
}

// DefaultOptions returns the parsing defaults observed in production
// screenshots: the last two path segments joined with " - "
// (e.g. "Hardgoods - Cycling").
func DefaultOptions() *Options {
	return &Options{
		TitlePathSegments: 2,
		TitleJoin:         " - ",
	}
}
