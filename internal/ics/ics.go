// Package ics emits iCalendar files for reconciled shifts, for import into
// any calendar application.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/jonathan/gearshift/internal/types"
)

// DefaultFilename is the suggested download name for generated files.
const DefaultFilename = "gearshift-schedule.ics"

const productID = "-//GearShift//Schedule Export//EN"

// Generate renders the shifts as an iCalendar document. Event times are
// floating local times: the screenshots carry wall-clock times with no zone,
// and the importing calendar is the right place to pin one. UIDs are stable
// per (date, start) so re-importing an updated export replaces events
// instead of duplicating them.
func Generate(shifts []types.Shift) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	now := time.Now()
	for _, shift := range shifts {
		start, err := localTimestamp(shift.Date, shift.StartTime)
		if err != nil {
			return "", fmt.Errorf("shift %s: %w", shift.Date, err)
		}
		end, err := localTimestamp(shift.Date, shift.EndTime)
		if err != nil {
			return "", fmt.Errorf("shift %s: %w", shift.Date, err)
		}

		event := cal.AddEvent(eventUID(shift))
		event.SetDtStampTime(now)
		event.SetSummary(shift.Title)
		event.SetStatus(ical.ObjectStatusConfirmed)
		event.SetProperty(ical.ComponentPropertyDtStart, start)
		event.SetProperty(ical.ComponentPropertyDtEnd, end)
	}

	return cal.Serialize(), nil
}

// eventUID builds a stable UID for one shift. Start time is part of the key
// so split shifts on the same day stay distinct.
func eventUID(shift types.Shift) string {
	return fmt.Sprintf("gearshift-%s-%s@gearshift",
		shift.Date, strings.ReplaceAll(shift.StartTime, ":", ""))
}

// localTimestamp renders "2026-02-20" + "09:30" as a floating iCalendar
// timestamp ("20260220T093000", no zone suffix).
func localTimestamp(date, clock string) (string, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return "", fmt.Errorf("invalid shift time %q %q: %w", date, clock, err)
	}
	return t.Format("20060102T150405"), nil
}
