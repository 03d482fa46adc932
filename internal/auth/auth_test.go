package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/pkg/gcalendar"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockTokenStore struct {
	tokens map[int64]*oauth2.Token
	saves  int
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: map[int64]*oauth2.Token{}}
}

func (m *mockTokenStore) GetGoogleToken(userID int64) (*oauth2.Token, error) {
	return m.tokens[userID], nil
}

func (m *mockTokenStore) SaveGoogleToken(userID int64, token *oauth2.Token) error {
	m.tokens[userID] = token
	m.saves++
	return nil
}

func (m *mockTokenStore) DeleteGoogleToken(userID int64) (bool, error) {
	_, ok := m.tokens[userID]
	delete(m.tokens, userID)
	return ok, nil
}

type mockExchanger struct {
	authURLFn  func(state string) string
	exchangeFn func(ctx context.Context, code string) (*oauth2.Token, error)
	refreshFn  func(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error)
}

func (m *mockExchanger) AuthURL(state string) string {
	if m.authURLFn != nil {
		return m.authURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *mockExchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return &oauth2.Token{AccessToken: "exchanged"}, nil
}

func (m *mockExchanger) Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, tok)
	}
	return tok, nil
}

func (m *mockExchanger) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return oauth2.StaticTokenSource(tok)
}

type stubCalendar struct{}

func (stubCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	return nil, nil
}

func (stubCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	return &gcalendar.Event{}, nil
}

func (stubCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	return nil
}

func newTestService(store *mockTokenStore, ex *mockExchanger) *Service {
	svc := New(&mockLogger{}, store, ex)
	svc.newClient = func(ctx context.Context, ts oauth2.TokenSource) (meeting.CalendarAPI, error) {
		return stubCalendar{}, nil
	}
	return svc
}

func TestClientFor(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored token", func(t *testing.T) {
		svc := newTestService(newMockTokenStore(), &mockExchanger{})

		_, err := svc.ClientFor(ctx, 1)
		if !errors.Is(err, meeting.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("valid token is not rewritten", func(t *testing.T) {
		store := newMockTokenStore()
		store.tokens[1] = &oauth2.Token{AccessToken: "live", Expiry: time.Now().Add(time.Hour)}
		svc := newTestService(store, &mockExchanger{})

		if _, err := svc.ClientFor(ctx, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.saves != 0 {
			t.Errorf("expected no token writes, got %d", store.saves)
		}
	})

	t.Run("refreshed token is persisted", func(t *testing.T) {
		store := newMockTokenStore()
		store.tokens[1] = &oauth2.Token{AccessToken: "stale", RefreshToken: "r", Expiry: time.Now().Add(-time.Hour)}
		ex := &mockExchanger{
			refreshFn: func(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
				return &oauth2.Token{AccessToken: "fresh", RefreshToken: tok.RefreshToken, Expiry: time.Now().Add(time.Hour)}, nil
			},
		}
		svc := newTestService(store, ex)

		if _, err := svc.ClientFor(ctx, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.saves != 1 {
			t.Fatalf("expected 1 token write, got %d", store.saves)
		}
		if store.tokens[1].AccessToken != "fresh" {
			t.Errorf("stored token not replaced, access=%q", store.tokens[1].AccessToken)
		}
	})

	t.Run("refresh failure maps to not authenticated", func(t *testing.T) {
		store := newMockTokenStore()
		store.tokens[1] = &oauth2.Token{AccessToken: "stale"}
		ex := &mockExchanger{
			refreshFn: func(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
				return nil, errors.New("invalid_grant")
			},
		}
		svc := newTestService(store, ex)

		_, err := svc.ClientFor(ctx, 1)
		if !errors.Is(err, meeting.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("auth url marks user pending", func(t *testing.T) {
		svc := newTestService(newMockTokenStore(), &mockExchanger{})

		url := svc.AuthURL(7)
		if url == "" {
			t.Fatal("empty auth url")
		}
		if !svc.PendingAuth(7) {
			t.Error("user should be pending after AuthURL")
		}
		if svc.PendingAuth(8) {
			t.Error("other users must not be pending")
		}
	})

	t.Run("complete auth stores token and clears pending", func(t *testing.T) {
		store := newMockTokenStore()
		svc := newTestService(store, &mockExchanger{})

		svc.AuthURL(7)
		if err := svc.CompleteAuth(ctx, 7, "code-123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.tokens[7] == nil {
			t.Fatal("token not stored")
		}
		if svc.PendingAuth(7) {
			t.Error("pending flag should be cleared")
		}
		ok, err := svc.Authorized(7)
		if err != nil || !ok {
			t.Errorf("Authorized = %v, %v; want true, nil", ok, err)
		}
	})

	t.Run("bad code keeps user unauthenticated", func(t *testing.T) {
		store := newMockTokenStore()
		ex := &mockExchanger{
			exchangeFn: func(ctx context.Context, code string) (*oauth2.Token, error) {
				return nil, errors.New("invalid code")
			},
		}
		svc := newTestService(store, ex)

		svc.AuthURL(7)
		if err := svc.CompleteAuth(ctx, 7, "bogus"); err == nil {
			t.Fatal("expected error")
		}
		if len(store.tokens) != 0 {
			t.Error("no token should be stored on failed exchange")
		}
	})

	t.Run("logout removes token", func(t *testing.T) {
		store := newMockTokenStore()
		store.tokens[7] = &oauth2.Token{AccessToken: "t"}
		svc := newTestService(store, &mockExchanger{})

		existed, err := svc.Logout(ctx, 7)
		if err != nil || !existed {
			t.Fatalf("Logout = %v, %v; want true, nil", existed, err)
		}
		existed, err = svc.Logout(ctx, 7)
		if err != nil || existed {
			t.Fatalf("second Logout = %v, %v; want false, nil", existed, err)
		}
	})
}
