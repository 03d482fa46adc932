package meeting

import "time"

// --- UseCase Inputs ---

// CreateInput carries a finished event draft collected by the creation dialog.
// Date and Time are normalized strings in "02.01.2006" and "15:04" form.
type CreateInput struct {
	Title         string
	Date          string
	Time          string
	DurationHours float64
	Description   string
	WantsMeetLink bool
}

// --- UseCase Outputs ---

// CreateOutput is everything the confirmation message needs to render.
type CreateOutput struct {
	EventID     string
	EventLink   string
	MeetLink    string
	Title       string
	Description string
	Date        string
	TimeRange   string
	Start       time.Time
	End         time.Time
}
