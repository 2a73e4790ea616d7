package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jonathan/gearshift/internal/types"
)

// SyncResult reports the outcome of pushing one session's shifts.
type SyncResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors,omitempty"`
}

// Sync inserts one calendar event per shift into the user's primary
// calendar. Individual failures are collected and reported; the remaining
// shifts still sync.
func Sync(ctx context.Context, accessToken string, shifts []types.Shift, timeZone string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	timeZone = resolveTimeZone(timeZone)

	svc, err := calendar.NewService(ctx, option.WithTokenSource(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	result := &SyncResult{}
	for _, shift := range shifts {
		event := shiftEvent(shift, timeZone)
		if _, err := svc.Events.Insert("primary", event).Context(ctx).Do(); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to create event for %s: %v", shift.Date, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// resolveTimeZone falls back from an empty zone to the host's IANA zone
// name. time.Local.String() reports the literal "Local" when TZ is unset,
// which the Calendar API rejects, so that case falls through to UTC.
func resolveTimeZone(timeZone string) string {
	if timeZone != "" {
		return timeZone
	}
	if name := time.Local.String(); name != "Local" {
		return name
	}
	return "UTC"
}

// shiftEvent converts one shift into a calendar event with local times in
// the caller's zone.
func shiftEvent(shift types.Shift, timeZone string) *calendar.Event {
	title := shift.Title
	if title == "" {
		title = "Work Shift"
	}
	return &calendar.Event{
		Summary: title,
		Start: &calendar.EventDateTime{
			DateTime: shift.Date + "T" + shift.StartTime + ":00",
			TimeZone: timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: shift.Date + "T" + shift.EndTime + ":00",
			TimeZone: timeZone,
		},
	}
}
