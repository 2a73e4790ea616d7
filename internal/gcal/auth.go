// Package gcal pushes reconciled shifts to Google Calendar and handles the
// OAuth flow that authorizes it.
package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// stateTTL bounds how long an OAuth round-trip may take before the state
// token is rejected.
const stateTTL = 10 * time.Minute

// AuthConfig holds the Google OAuth application credentials.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	StateSecret  string // HMAC key for signing the OAuth state parameter
}

// OAuthFlow builds authorization URLs and exchanges authorization codes for
// tokens.
type OAuthFlow struct {
	oauth  oauth2.Config
	secret []byte
}

// NewOAuthFlow creates the OAuth flow for calendar event access.
func NewOAuthFlow(cfg AuthConfig) (*OAuthFlow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		return nil, fmt.Errorf("Google OAuth credentials not configured")
	}
	if cfg.StateSecret == "" {
		return nil, fmt.Errorf("OAuth state secret not configured")
	}

	return &OAuthFlow{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		secret: []byte(cfg.StateSecret),
	}, nil
}

// AuthURL returns the consent-screen URL to redirect the user to. Offline
// access plus a forced consent prompt yields a refresh token on every
// authorization.
func (f *OAuthFlow) AuthURL() (string, error) {
	state, err := f.newState()
	if err != nil {
		return "", err
	}
	return f.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange validates the state parameter and trades the authorization code
// for tokens.
func (f *OAuthFlow) Exchange(ctx context.Context, state, code string) (*oauth2.Token, error) {
	if err := f.verifyState(state); err != nil {
		return nil, fmt.Errorf("invalid OAuth state: %w", err)
	}
	if code == "" {
		return nil, fmt.Errorf("authorization code is empty")
	}

	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// newState issues a short-lived signed token carried through the OAuth
// round-trip to bind the callback to a request this server actually made.
func (f *OAuthFlow) newState() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "gearshift",
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(f.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return signed, nil
}

// verifyState checks the signature and expiry of a state token returned by
// the OAuth callback.
func (f *OAuthFlow) verifyState(state string) error {
	if state == "" {
		return fmt.Errorf("state is empty")
	}

	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return f.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("state token is not valid")
	}
	return nil
}
