package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/log"
)

// TokenStore is the slice of the persistence layer the auth service needs.
type TokenStore interface {
	GetGoogleToken(userID int64) (*oauth2.Token, error)
	SaveGoogleToken(userID int64, token *oauth2.Token) error
	DeleteGoogleToken(userID int64) (bool, error)
}

// Exchanger wraps the OAuth flow against Google. Satisfied by *gcalendar.Auth.
type Exchanger interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error)
	TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource
}

// Service manages per-user Google OAuth tokens and hands out calendar
// clients bound to them.
type Service struct {
	l     log.Logger
	store TokenStore
	oauth Exchanger

	// pending tracks users who requested a login URL and whose next text
	// message should be treated as an authorization code.
	pending *expirable.LRU[int64, struct{}]

	// newClient is swapped in tests to avoid real API calls.
	newClient func(ctx context.Context, ts oauth2.TokenSource) (meeting.CalendarAPI, error)
}

const pendingTTL = 10 * time.Minute

func New(l log.Logger, store TokenStore, oauth Exchanger) *Service {
	return &Service{
		l:       l,
		store:   store,
		oauth:   oauth,
		pending: expirable.NewLRU[int64, struct{}](1000, nil, pendingTTL),
		newClient: func(ctx context.Context, ts oauth2.TokenSource) (meeting.CalendarAPI, error) {
			c, err := gcalendar.NewClientFromTokenSource(ctx, ts)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// AuthURL returns the Google consent URL for the user and marks the user as
// awaiting an authorization code.
func (s *Service) AuthURL(userID int64) string {
	s.pending.Add(userID, struct{}{})
	return s.oauth.AuthURL(strconv.FormatInt(userID, 10))
}

// PendingAuth reports whether the user's next message should be read as an
// authorization code.
func (s *Service) PendingAuth(userID int64) bool {
	_, ok := s.pending.Get(userID)
	return ok
}

// CompleteAuth exchanges the pasted authorization code and persists the
// resulting token, replacing any previous one.
func (s *Service) CompleteAuth(ctx context.Context, userID int64, code string) error {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.l.Errorf(ctx, "auth.CompleteAuth Exchange user=%d: %v", userID, err)
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := s.store.SaveGoogleToken(userID, tok); err != nil {
		s.l.Errorf(ctx, "auth.CompleteAuth SaveGoogleToken user=%d: %v", userID, err)
		return err
	}
	s.pending.Remove(userID)
	s.l.Infof(ctx, "auth: user %d connected google calendar", userID)
	return nil
}

// Logout removes the stored token. Returns false when there was nothing to
// remove.
func (s *Service) Logout(ctx context.Context, userID int64) (bool, error) {
	existed, err := s.store.DeleteGoogleToken(userID)
	if err != nil {
		s.l.Errorf(ctx, "auth.Logout user=%d: %v", userID, err)
		return false, err
	}
	s.pending.Remove(userID)
	return existed, nil
}

// Authorized reports whether the user has a stored token.
func (s *Service) Authorized(userID int64) (bool, error) {
	tok, err := s.store.GetGoogleToken(userID)
	if err != nil {
		return false, err
	}
	return tok != nil, nil
}

// ClientFor loads the user's token, refreshes it if stale and returns a
// calendar client bound to it. The refreshed token is written back as a
// whole-row replacement so later calls see the new access token.
func (s *Service) ClientFor(ctx context.Context, userID int64) (meeting.CalendarAPI, error) {
	tok, err := s.store.GetGoogleToken(userID)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, meeting.ErrNotAuthenticated
	}

	fresh, err := s.oauth.Refresh(ctx, tok)
	if err != nil {
		s.l.Warnf(ctx, "auth.ClientFor refresh user=%d: %v", userID, err)
		return nil, meeting.ErrNotAuthenticated
	}
	if fresh.AccessToken != tok.AccessToken {
		if err := s.store.SaveGoogleToken(userID, fresh); err != nil {
			s.l.Errorf(ctx, "auth.ClientFor persist refreshed token user=%d: %v", userID, err)
			return nil, err
		}
	}

	return s.newClient(ctx, s.oauth.TokenSource(ctx, fresh))
}
