package meeting

import "errors"

var (
	ErrNotAuthenticated = errors.New("user is not authenticated with google calendar")
	ErrInvalidDraft     = errors.New("event draft is incomplete or invalid")
	ErrNoMeetLink       = errors.New("google did not return a meet link")
)
