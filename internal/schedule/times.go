package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// normalizeClockTime converts a 12-hour clock token ("9:30 AM", "5:30PM") to
// zero-padded 24-hour form ("09:30", "17:30"). AM/PM is detected by substring
// presence, so the conversion is idempotent on input that is already in
// 24-hour shape: a bare "09:30" has no meridiem letters and passes through
// unchanged.
func normalizeClockTime(token string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(token))
	isPM := strings.Contains(cleaned, "P")
	isAM := strings.Contains(cleaned, "A")

	stripped := strings.Map(func(r rune) rune {
		switch r {
		case 'A', 'P', 'M', ' ':
			return -1
		}
		return r
	}, cleaned)

	hourStr, minute, ok := strings.Cut(stripped, ":")
	if !ok {
		return stripped
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return stripped
	}

	if isPM && hour != 12 {
		hour += 12
	}
	if isAM && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%s", hour, minute)
}
