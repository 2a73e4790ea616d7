// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/gearshift/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxTranscriptLines bounds how much raw OCR text is echoed per image
	maxTranscriptLines = 12
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSession outputs a human-readable summary of a finished session:
// the reconciled shift table, any per-image warnings, and per-image
// provenance counts.
func (p *Printer) PrintSession(session *types.Session) {
	if session == nil {
		return
	}

	var sb strings.Builder
	if len(session.Shifts) == 0 {
		sb.WriteString("(no shifts)\n")
	}
	for _, s := range session.Shifts {
		sb.WriteString(fmt.Sprintf("%s  %s-%s  %s  (screenshot %d)\n",
			s.Date, s.StartTime, s.EndTime, s.Title, s.SourceIndex+1))
	}

	if len(session.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range session.Warnings {
			sb.WriteString("  - " + w + "\n")
		}
	}

	p.printBox(fmt.Sprintf("Reconciled schedule (%d shifts)", len(session.Shifts)),
		strings.TrimRight(sb.String(), "\n"))
}

// PrintTranscript echoes one image's raw OCR text, truncated, so a user can
// see what the classifier actually received.
func (p *Printer) PrintTranscript(report types.ImageReport) {
	lines := strings.Split(report.Transcript, "\n")
	if len(lines) > maxTranscriptLines {
		lines = append(lines[:maxTranscriptLines], fmt.Sprintf("... (%d more lines)", len(lines)-maxTranscriptLines))
	}

	title := fmt.Sprintf("Screenshot %d transcript (confidence %.0f, %d shifts)",
		report.Index+1, report.Confidence, report.Shifts)
	p.printBox(title, strings.Join(lines, "\n"))
}
