package gcalendar

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// Auth wraps the OAuth2 application config shared by all users. Tokens
// themselves are per user and live in the caller's store; Auth only knows how
// to mint, exchange, and refresh them.
type Auth struct {
	config *oauth2.Config
}

// NewAuthFromCredentialsFile builds Auth from an OAuth client credentials JSON
// file (Google Cloud "Desktop app" or "Web application" type).
func NewAuthFromCredentialsFile(credentialsPath, redirectURL string) (*Auth, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewAuthFromCredentialsJSON(data, redirectURL)
}

// NewAuthFromCredentialsJSON builds Auth from raw OAuth client credentials JSON.
func NewAuthFromCredentialsJSON(credentialsJSON []byte, redirectURL string) (*Auth, error) {
	config, err := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oauth credentials: %w", err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	return &Auth{config: config}, nil
}

// AuthURL returns the consent-screen URL the user must visit. The state value
// is echoed back on the redirect and should identify the requesting user.
func (a *Auth) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token.
func (a *Auth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

// Refresh returns a valid token derived from tok, refreshing against Google
// when the access token has expired. The input token is never mutated; a new
// value is returned so callers can persist the replacement atomically.
func (a *Auth) Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	fresh, err := a.config.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return fresh, nil
}

// TokenSource returns an auto-refreshing token source for tok.
func (a *Auth) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return a.config.TokenSource(ctx, tok)
}
