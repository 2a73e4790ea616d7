package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/gearshift/internal/types"
)

func TestPrintSession(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSession(&types.Session{
		Shifts: []types.Shift{
			{Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30", Title: "Hardgoods - Cycling", SourceIndex: 0},
		},
		Warnings: []string{"Screenshot 2 was readable but contained no shifts"},
	})

	out := buf.String()
	assert.Contains(t, out, "Reconciled schedule (1 shifts)")
	assert.Contains(t, out, "2026-02-20")
	assert.Contains(t, out, "Hardgoods - Cycling")
	assert.Contains(t, out, "Warnings:")
}

func TestPrintSessionNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSession(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTranscriptTruncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTranscript(types.ImageReport{
		Index:      0,
		Transcript: strings.Repeat("line\n", 30),
		Confidence: 88,
		Shifts:     2,
	})

	out := buf.String()
	assert.Contains(t, out, "Screenshot 1 transcript")
	assert.Contains(t, out, "more lines")
}
