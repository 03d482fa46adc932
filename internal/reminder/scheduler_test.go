package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/telegram"
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

type mockStore struct {
	users    []int64
	settings map[int64]int
}

func (m *mockStore) ListUsersWithGoogleToken() ([]int64, error) {
	return m.users, nil
}

func (m *mockStore) GetReminderSetting(userID int64) (int, bool, error) {
	minutes, ok := m.settings[userID]
	return minutes, ok, nil
}

type mockEvents struct {
	events map[int64][]gcalendar.Event
	err    map[int64]error
}

func (m *mockEvents) UpcomingEvents(ctx context.Context, sc model.Scope, within time.Duration) ([]gcalendar.Event, error) {
	if err := m.err[sc.UserID]; err != nil {
		return nil, err
	}
	return m.events[sc.UserID], nil
}

type sent struct {
	chatID int64
	text   string
}

type mockSender struct {
	sent []sent
	err  error
}

func (m *mockSender) SendMessageWithMarkup(chatID int64, text string, parseMode string, markup *telegram.InlineKeyboardMarkup) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sent{chatID: chatID, text: text})
	return nil
}

func TestSchedulerTick(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 2, 1, 12, 0, 0, 0, time.UTC)
	const interval = time.Minute

	newScheduler := func(store *mockStore, events *mockEvents, sender *mockSender) *Scheduler {
		s := New(&mockLogger{}, store, events, sender, time.UTC, interval, time.Hour)
		s.now = func() time.Time { return now }
		return s
	}

	event := func(id string, startsIn time.Duration) gcalendar.Event {
		return gcalendar.Event{
			ID:        id,
			Summary:   "Standup",
			StartTime: now.Add(startsIn),
			EndTime:   now.Add(startsIn + 30*time.Minute),
		}
	}

	t.Run("fires inside the window only", func(t *testing.T) {
		store := &mockStore{users: []int64{1}, settings: map[int64]int{1: 10}}
		events := &mockEvents{events: map[int64][]gcalendar.Event{
			1: {event("due", 10 * time.Minute), event("early", 11 * time.Minute), event("late", 5 * time.Minute)},
		}}
		sender := &mockSender{}

		newScheduler(store, events, sender).Tick(ctx)

		if len(sender.sent) != 1 {
			t.Fatalf("sent %d reminders, want 1", len(sender.sent))
		}
		if sender.sent[0].chatID != 1 || !strings.Contains(sender.sent[0].text, "10 minutes") {
			t.Errorf("sent = %+v", sender.sent[0])
		}
	})

	t.Run("no setting means no reminder", func(t *testing.T) {
		store := &mockStore{users: []int64{1}, settings: map[int64]int{}}
		events := &mockEvents{events: map[int64][]gcalendar.Event{
			1: {event("due", 10 * time.Minute)},
		}}
		sender := &mockSender{}

		newScheduler(store, events, sender).Tick(ctx)

		if len(sender.sent) != 0 {
			t.Fatalf("sent %d reminders, want 0", len(sender.sent))
		}
	})

	t.Run("zero-minute setting fires at start", func(t *testing.T) {
		store := &mockStore{users: []int64{1}, settings: map[int64]int{1: 0}}
		events := &mockEvents{events: map[int64][]gcalendar.Event{
			1: {event("starting", 30 * time.Second)},
		}}
		sender := &mockSender{}

		newScheduler(store, events, sender).Tick(ctx)

		if len(sender.sent) != 1 {
			t.Fatalf("sent %d reminders, want 1", len(sender.sent))
		}
		if !strings.Contains(sender.sent[0].text, "starting now") {
			t.Errorf("text = %q", sender.sent[0].text)
		}
	})

	t.Run("one failing user does not block the rest", func(t *testing.T) {
		store := &mockStore{users: []int64{1, 2}, settings: map[int64]int{1: 10, 2: 10}}
		events := &mockEvents{
			events: map[int64][]gcalendar.Event{2: {event("due", 10 * time.Minute)}},
			err:    map[int64]error{1: errors.New("token expired")},
		}
		sender := &mockSender{}

		newScheduler(store, events, sender).Tick(ctx)

		if len(sender.sent) != 1 || sender.sent[0].chatID != 2 {
			t.Fatalf("sent = %+v, want one reminder for user 2", sender.sent)
		}
	})

	t.Run("run stops on context cancel", func(t *testing.T) {
		store := &mockStore{}
		s := newScheduler(store, &mockEvents{}, &mockSender{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not stop after cancel")
		}
	})
}
