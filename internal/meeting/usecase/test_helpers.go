package usecase

import (
	"context"
	"time"

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

// mockCalendar is a CalendarAPI with per-call function overrides.
type mockCalendar struct {
	listEventsFn  func(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	createEventFn func(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	deleteEventFn func(ctx context.Context, calendarID, eventID string) error
}

func (m *mockCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	if m.listEventsFn != nil {
		return m.listEventsFn(ctx, req)
	}
	return nil, nil
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	if m.createEventFn != nil {
		return m.createEventFn(ctx, req)
	}
	return &gcalendar.Event{ID: "ev-1"}, nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if m.deleteEventFn != nil {
		return m.deleteEventFn(ctx, calendarID, eventID)
	}
	return nil
}

// mockProvider hands out the same calendar to every user, or an error.
type mockProvider struct {
	calendar meeting.CalendarAPI
	err      error
}

func (m *mockProvider) ClientFor(ctx context.Context, userID int64) (meeting.CalendarAPI, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.calendar, nil
}

func newTestUseCase(cal *mockCalendar, now time.Time) *implUseCase {
	uc := New(&mockLogger{}, &mockProvider{calendar: cal}, time.UTC)
	uc.now = func() time.Time { return now }
	return uc
}
