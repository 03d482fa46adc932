package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Moscow"

	// ConferenceRequestID, when non-empty, asks Google to attach a Meet
	// conference to the event under that idempotency key.
	ConferenceRequestID string

	// Private hides the event from shared views.
	Private bool
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time // zero value means no upper bound
	MaxResults int64
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	HtmlLink    string
	HangoutLink string
	Attendees   []string // attendee email addresses
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
}
