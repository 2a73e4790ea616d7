package gcal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gearshift/internal/types"
)

func testFlow(t *testing.T) *OAuthFlow {
	t.Helper()
	flow, err := NewOAuthFlow(AuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/auth/google/callback",
		StateSecret:  "test-state-secret",
	})
	require.NoError(t, err)
	return flow
}

func TestNewOAuthFlowRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  AuthConfig
	}{
		{"missing client id", AuthConfig{ClientSecret: "s", RedirectURI: "r", StateSecret: "x"}},
		{"missing client secret", AuthConfig{ClientID: "c", RedirectURI: "r", StateSecret: "x"}},
		{"missing redirect", AuthConfig{ClientID: "c", ClientSecret: "s", StateSecret: "x"}},
		{"missing state secret", AuthConfig{ClientID: "c", ClientSecret: "s", RedirectURI: "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOAuthFlow(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestAuthURL(t *testing.T) {
	flow := testFlow(t)

	url, err := flow.AuthURL()

	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "client-id")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "state=")
}

func TestStateRoundTrip(t *testing.T) {
	flow := testFlow(t)

	state, err := flow.newState()
	require.NoError(t, err)
	assert.NoError(t, flow.verifyState(state))
}

func TestStateRejectsTampering(t *testing.T) {
	flow := testFlow(t)

	state, err := flow.newState()
	require.NoError(t, err)

	assert.Error(t, flow.verifyState(""))
	assert.Error(t, flow.verifyState(state+"x"))

	// A state signed with a different secret must not verify.
	other, err := NewOAuthFlow(AuthConfig{
		ClientID: "c", ClientSecret: "s", RedirectURI: "r", StateSecret: "different",
	})
	require.NoError(t, err)
	foreign, err := other.newState()
	require.NoError(t, err)
	assert.Error(t, flow.verifyState(foreign))
}

func TestExchangeRejectsBadState(t *testing.T) {
	flow := testFlow(t)

	_, err := flow.Exchange(context.Background(), "not-a-state", "code")
	assert.Error(t, err)
}

func TestShiftEvent(t *testing.T) {
	event := shiftEvent(types.Shift{
		Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30", Title: "Hardgoods - Cycling",
	}, "America/Chicago")

	assert.Equal(t, "Hardgoods - Cycling", event.Summary)
	assert.Equal(t, "2026-02-20T09:30:00", event.Start.DateTime)
	assert.Equal(t, "2026-02-20T17:30:00", event.End.DateTime)
	assert.Equal(t, "America/Chicago", event.Start.TimeZone)
	assert.Equal(t, "America/Chicago", event.End.TimeZone)
}

func TestResolveTimeZone(t *testing.T) {
	assert.Equal(t, "America/Chicago", resolveTimeZone("America/Chicago"))

	// The empty-zone fallback must be a name the Calendar API accepts:
	// never empty, and never the literal "Local" the stdlib reports when
	// TZ is unset.
	resolved := resolveTimeZone("")
	assert.NotEmpty(t, resolved)
	assert.NotEqual(t, "Local", resolved)
}

func TestShiftEventDefaultsTitle(t *testing.T) {
	event := shiftEvent(types.Shift{Date: "2026-02-20", StartTime: "09:30", EndTime: "17:30"}, "UTC")
	assert.Equal(t, "Work Shift", event.Summary)
}
