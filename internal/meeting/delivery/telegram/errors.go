package telegram

import (
	"errors"

	"meeting-assistant/internal/meeting"
)

// userMessage maps an error to a string safe to show in chat.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, meeting.ErrNotAuthenticated):
		return "Your Google Calendar session expired. Use /relogin to sign in again."
	case errors.Is(err, meeting.ErrInvalidDraft):
		return "The event details look wrong. Send /create_event to start over."
	case errors.Is(err, meeting.ErrNoMeetLink):
		return "Google didn't return a Meet link. Try again in a moment."
	default:
		return "Something went wrong. Please try again."
	}
}
