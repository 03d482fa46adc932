package dialog

import "meeting-assistant/pkg/telegram"

// Step is the dialog position. Steps advance strictly forward except when
// the user edits a field from the confirmation summary.
type Step int

const (
	StepTitle Step = iota
	StepDate
	StepTime
	StepDuration
	StepDescription
	StepMeetChoice
	StepConfirm
)

// Draft accumulates the event fields as the dialog progresses. Set flags
// distinguish "skipped" from "not reached yet" for optional fields.
type Draft struct {
	Title          string
	Date           string // normalized DD.MM.YYYY
	Time           string // normalized HH:MM
	DurationHours  float64
	DurationSet    bool
	Description    string
	DescriptionSet bool
	WantsMeetLink  bool
}

// Session is one user's in-flight dialog.
type Session struct {
	Step  Step
	Draft Draft

	// Editing marks a detour from the confirmation summary. The step the
	// user is fixing returns to StepConfirm instead of advancing.
	Editing bool
}

// Prompt is what the dialog wants shown to the user next.
type Prompt struct {
	Text     string
	Keyboard *telegram.InlineKeyboardMarkup

	// Edit asks the delivery layer to rewrite the message the user tapped
	// instead of sending a new one.
	Edit bool
}

// Callback actions understood by the dialog. Payloads on the wire are
// "action" or "action:argument".
const (
	ActionSelectDate     = "select_date"
	ActionSelectTime     = "select_time"
	ActionSelectDuration = "select_duration"
	ActionManualDate     = "manual_date_input"
	ActionManualTime     = "manual_time_input"
	ActionManualDuration = "manual_duration_input"
	ActionSkipDesc       = "skip_description"
	ActionMeetLink       = "create_meet_link"
	ActionConfirm        = "confirm_event"
	ActionEdit           = "edit_event"
	ActionEditTitle      = "edit_title"
	ActionEditDate       = "edit_date"
	ActionEditTime       = "edit_time"
	ActionEditDuration   = "edit_duration"
	ActionEditDesc       = "edit_description"
	ActionCancel         = "cancel_creation"
	ActionBackToMenu     = "back_to_menu"
)

// Field limits enforced while collecting input.
const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 1000
)
