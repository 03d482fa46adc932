package meeting

import (
	"context"
	"time"

	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
)

// UseCase is the business logic surface of the meeting domain.
type UseCase interface {
	// Create commits a finished draft to the user's primary calendar.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)

	// Query commands
	TodayEvents(ctx context.Context, sc model.Scope) ([]gcalendar.Event, error)
	TomorrowEvents(ctx context.Context, sc model.Scope) ([]gcalendar.Event, error)
	CurrentEvent(ctx context.Context, sc model.Scope) (*gcalendar.Event, error)
	NextEvent(ctx context.Context, sc model.Scope) (*gcalendar.Event, error)

	// UpcomingEvents lists events starting within the given window,
	// used by the reminder scheduler.
	UpcomingEvents(ctx context.Context, sc model.Scope, within time.Duration) ([]gcalendar.Event, error)

	// GenerateMeetLink creates a standalone Google Meet link without a
	// lasting calendar event.
	GenerateMeetLink(ctx context.Context, sc model.Scope) (string, error)
}

// CalendarAPI is the slice of the Google Calendar client the usecase needs.
type CalendarAPI interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// CalendarProvider yields a per-user calendar client backed by that user's
// OAuth token. Implementations return ErrNotAuthenticated when no token is
// stored for the user.
type CalendarProvider interface {
	ClientFor(ctx context.Context, userID int64) (CalendarAPI, error)
}
