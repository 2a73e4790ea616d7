package schedule

import (
	"regexp"
	"strings"
)

// monthNumbers maps the first three letters of a month name to its
// zero-padded calendar number.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

const monthPattern = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

var (
	// "February 2026 v"; the trailing glyph is UI noise from the month picker.
	monthYearRe = regexp.MustCompile(`^(?i)(` + monthPattern + `)\s+(\d{4})`)

	// "February 22 - 28", "March O1 - 07". OCR frequently garbles the day
	// numbers in week headers, so only the month name is trusted.
	weekRangeRe = regexp.MustCompile(`^(?i)(` + monthPattern + `)\s+\S+\s*[-–—]\s*\S+`)

	weekdayRe   = regexp.MustCompile(`^(?i)(Mon|Tue|Wed|Thu|Fri|Sat|Sun)`)
	monthLeadRe = regexp.MustCompile(`^(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`)
	chromeRe    = regexp.MustCompile(`^(?i)(Home|Inbox|Menu|Schedule|My Schedule)`)

	// A line that is nothing but a bracketed duration tag, e.g. "[8:00]".
	bracketRe = regexp.MustCompile(`^\[[^\]]*\]$`)

	// "9:30 AM-5:30 PM", with any of the dash variants OCR produces.
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AaPp][Mm])\s*[-–—]\s*(\d{1,2}:\d{2}\s*[AaPp][Mm])`)

	// Leading day number on the same line as the time range (older layout):
	// "20 4 9:30 AM-5:30 PM [8:00]".
	inlineDayRe = regexp.MustCompile(`^(\d{1,2})\s+`)

	// A line that is only a one-or-two-digit day number (newer layout).
	bareDayRe = regexp.MustCompile(`^\d{1,2}$`)
)

// parseContext is the classifier's running state for one transcript. It is
// owned by a single Parse call and discarded when the transcript's lines are
// exhausted; it never carries over between screenshots.
type parseContext struct {
	month string // "01".."12", empty until a header resolves it
	year  string // four digits, empty until a header resolves it

	expectDay    bool   // the line right after a weekday marker may be a bare day number
	pendingDay   string // zero-padded day captured from a bare day-number line
	pendingLabel string // shift label captured before its time range
	skipNext     bool   // armed by a time-off marker; discards the next time range
}

// clearPending resets all per-day state. Headers and weekday markers start a
// fresh day, so stale labels, day numbers, and skip flags from a previous,
// unrelated day must not leak forward.
func (c *parseContext) clearPending() {
	c.expectDay = false
	c.pendingDay = ""
	c.pendingLabel = ""
	c.skipNext = false
}

// Parser extracts shift candidates from one OCR transcript at a time.
type Parser struct {
	opts Options
}

// NewParser creates a Parser. A nil opts uses DefaultOptions.
func NewParser(opts *Options) *Parser {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Parser{opts: *opts}
}

// Parse classifies the transcript with default options.
func Parse(text string) []Candidate {
	return NewParser(nil).Parse(text)
}

// Parse walks the transcript's trimmed, non-empty lines in order and returns
// every shift candidate that could be anchored to a fully resolved date. The
// two screenshot layouts are handled by one state machine: the day number is
// taken from a preceding bare day-number line when one is pending, otherwise
// from the front of the time-range line itself. Unresolvable lines are
// skipped silently; no line ever aborts the transcript.
func (p *Parser) Parse(text string) []Candidate {
	lines := splitLines(text)

	var shifts []Candidate
	ctx := &parseContext{}

	for i, line := range lines {
		// "Immediately after a weekday marker" is exact: the armed state
		// survives only into this line, whatever category it turns out to be.
		armed := ctx.expectDay
		ctx.expectDay = false

		// Month/year header: "February 2026". Establishes the date context
		// every later shift line depends on.
		if m := monthYearRe.FindStringSubmatch(line); m != nil {
			ctx.month = monthNumbers[strings.ToLower(m[1])[:3]]
			ctx.year = m[2]
			ctx.clearPending()
			continue
		}

		// Week header: "February 22 - 28". Only the month name is trusted;
		// it silently corrects month drift across week boundaries.
		if m := weekRangeRe.FindStringSubmatch(line); m != nil {
			ctx.month = monthNumbers[strings.ToLower(m[1])[:3]]
			ctx.clearPending()
			continue
		}

		// Day-of-week marker: "Fri". Starts a fresh day and arms
		// day-number-expected mode for the next line.
		if isWeekdayMarker(line) {
			ctx.clearPending()
			ctx.expectDay = true
			continue
		}

		// Navigation chrome from the app's bottom bar.
		if chromeRe.MatchString(line) {
			continue
		}

		// Standalone duration tag, e.g. "[8:00]". Redundant with the time
		// range, so dropped.
		if bracketRe.MatchString(line) {
			continue
		}

		// Time-off entries produce no shift. Arm the skip flag so the
		// upcoming time range is discarded rather than materialized.
		if strings.Contains(strings.ToLower(line), "time off") {
			ctx.skipNext = true
			ctx.pendingLabel = ""
			continue
		}

		// Bare day number, accepted only immediately after a weekday marker.
		if armed && bareDayRe.MatchString(line) {
			ctx.pendingDay = padDay(line)
			continue
		}

		// Time range: the anchor that materializes a candidate.
		if m := timeRangeRe.FindStringSubmatch(line); m != nil {
			if c, ok := p.materialize(ctx, line, m, lines[i+1:]); ok {
				shifts = append(shifts, c)
			}
			continue
		}

		// Free text while a day number is pending is the shift label for the
		// upcoming time range, unless it is a department path (those are
		// picked up by the forward scan after the time range instead).
		if ctx.pendingDay != "" && !strings.Contains(line, "/") {
			ctx.pendingLabel = line
			continue
		}
	}

	return shifts
}

// materialize builds a candidate from a matched time-range line, or reports
// false when the date cannot be resolved or the shift was marked as time off.
func (p *Parser) materialize(ctx *parseContext, line string, m []string, rest []string) (Candidate, bool) {
	if ctx.skipNext {
		ctx.clearPending()
		return Candidate{}, false
	}

	day := ctx.pendingDay
	if day == "" {
		if dm := inlineDayRe.FindStringSubmatch(line); dm != nil {
			day = padDay(dm[1])
		}
	}
	if day == "" || ctx.month == "" || ctx.year == "" {
		// Dangling time range with no governing date; skip it.
		return Candidate{}, false
	}

	title := ctx.pendingLabel
	if title == "" {
		title = scanTitle(rest)
	}
	title = p.resolveTitle(title)

	c := Candidate{
		Date:      ctx.year + "-" + ctx.month + "-" + day,
		StartTime: normalizeClockTime(m[1]),
		EndTime:   normalizeClockTime(m[2]),
		Title:     title,
	}
	ctx.clearPending()
	return c, true
}

// scanTitle accumulates the free-text lines that follow a time range until
// the next structural line. Bracketed duration tags inside the run are
// skipped rather than treated as terminators.
func scanTitle(rest []string) string {
	var parts []string
	for _, line := range rest {
		if bracketRe.MatchString(line) {
			continue
		}
		if isWeekdayMarker(line) || monthLeadRe.MatchString(line) ||
			timeRangeRe.MatchString(line) || chromeRe.MatchString(line) {
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// resolveTitle applies the department-path rule and the default label. A
// slash-separated path like "REI/REI/Retail/East/Midwest/0073/Hardgoods/Cycling"
// keeps only its trailing segments ("Hardgoods - Cycling"); anything else is
// used verbatim.
func (p *Parser) resolveTitle(title string) string {
	if strings.Contains(title, "/") {
		var segments []string
		for _, s := range strings.Split(title, "/") {
			if s = strings.TrimSpace(s); s != "" {
				segments = append(segments, s)
			}
		}
		switch {
		case len(segments) >= p.opts.TitlePathSegments:
			title = strings.Join(segments[len(segments)-p.opts.TitlePathSegments:], p.opts.TitleJoin)
		case len(segments) > 0:
			title = segments[len(segments)-1]
		default:
			title = ""
		}
	}
	if title == "" {
		return DefaultTitle
	}
	return title
}

// padDay left-pads a one-digit day number to two digits.
func padDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

// isWeekdayMarker reports whether the line is a short day-of-week token such
// as "Fri" or "Friday". The length cap keeps sentences that merely start
// with a day name from being mistaken for markers.
func isWeekdayMarker(line string) bool {
	return len(line) <= 10 && weekdayRe.MatchString(line)
}

// splitLines returns the transcript's whitespace-trimmed, non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
