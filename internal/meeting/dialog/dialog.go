// Package dialog implements the guided event-creation conversation as an
// explicit per-user state machine. Sessions live in an expiring in-memory
// store; an abandoned dialog simply ages out.
package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"meeting-assistant/pkg/timeparse"
)

const (
	sessionCap = 1000
	sessionTTL = 30 * time.Minute
)

// Manager owns all in-flight dialog sessions, keyed by Telegram user id.
// Callers must serialize calls per user; distinct users are independent.
type Manager struct {
	sessions *expirable.LRU[int64, *Session]
	loc      *time.Location

	// now is stubbed in tests.
	now func() time.Time
}

func NewManager(loc *time.Location) *Manager {
	return &Manager{
		sessions: expirable.NewLRU[int64, *Session](sessionCap, nil, sessionTTL),
		loc:      loc,
		now:      time.Now,
	}
}

// Start begins a fresh dialog for the user, discarding any previous one.
func (m *Manager) Start(userID int64) Prompt {
	s := &Session{Step: StepTitle}
	m.sessions.Add(userID, s)
	return m.stepPrompt(s)
}

// Active reports whether the user has a dialog in flight.
func (m *Manager) Active(userID int64) bool {
	_, ok := m.sessions.Get(userID)
	return ok
}

// Cancel drops the user's session. Returns false when there was none.
func (m *Manager) Cancel(userID int64) bool {
	return m.sessions.Remove(userID)
}

// TakeDraft removes the session and hands out its draft for committing.
// Only a session sitting at the confirmation step can be taken.
func (m *Manager) TakeDraft(userID int64) (Draft, bool) {
	s, ok := m.sessions.Get(userID)
	if !ok || s.Step != StepConfirm {
		return Draft{}, false
	}
	m.sessions.Remove(userID)
	return s.Draft, true
}

// HandleText feeds a typed message into the user's dialog. The second
// return is false when the user has no active session.
func (m *Manager) HandleText(userID int64, text string) (Prompt, bool) {
	s, ok := m.sessions.Get(userID)
	if !ok {
		return Prompt{}, false
	}

	text = strings.TrimSpace(text)
	switch s.Step {
	case StepTitle:
		if text == "" {
			return Prompt{Text: "The title can't be empty. What's the meeting about?", Keyboard: titleKeyboard()}, true
		}
		if len([]rune(text)) > MaxTitleLen {
			return Prompt{Text: fmt.Sprintf("That title is too long (max %d characters). Try a shorter one:", MaxTitleLen), Keyboard: titleKeyboard()}, true
		}
		s.Draft.Title = text
		return m.advance(s, StepDate), true

	case StepDate:
		if !timeparse.ValidDate(text) {
			return Prompt{Text: "I couldn't read that date. Use DD.MM.YYYY, e.g. 24.03.2026:", Keyboard: dateKeyboard(m.now().In(m.loc))}, true
		}
		s.Draft.Date = timeparse.NormalizeDate(text)
		return m.advance(s, StepTime), true

	case StepTime:
		if !timeparse.ValidTime(text) {
			return Prompt{Text: "I couldn't read that time. Use HH:MM, e.g. 14:30:", Keyboard: timeKeyboard()}, true
		}
		s.Draft.Time = timeparse.NormalizeTime(text)
		return m.advance(s, StepDuration), true

	case StepDuration:
		hours, err := timeparse.ParseDuration(text)
		if err != nil {
			return Prompt{Text: "Duration must be a number of hours between 0.25 and 8, e.g. 1.5:", Keyboard: durationKeyboard()}, true
		}
		s.Draft.DurationHours = hours
		s.Draft.DurationSet = true
		return m.advance(s, StepDescription), true

	case StepDescription:
		if len([]rune(text)) > MaxDescriptionLen {
			return Prompt{Text: fmt.Sprintf("That description is too long (max %d characters). Try again or skip:", MaxDescriptionLen), Keyboard: descriptionKeyboard()}, true
		}
		s.Draft.Description = text
		s.Draft.DescriptionSet = true
		return m.advance(s, StepMeetChoice), true

	default:
		// Meet choice and confirmation are button-only.
		return m.stepPrompt(s), true
	}
}

// HandleAction feeds a button press into the user's dialog. Unknown actions
// and actions without a session return false.
func (m *Manager) HandleAction(userID int64, action, arg string) (Prompt, bool) {
	s, ok := m.sessions.Get(userID)
	if !ok {
		return Prompt{}, false
	}

	p, ok := m.applyAction(userID, s, action, arg)
	if !ok {
		return Prompt{}, false
	}
	p.Edit = true
	return p, true
}

func (m *Manager) applyAction(userID int64, s *Session, action, arg string) (Prompt, bool) {
	switch action {
	case ActionCancel:
		m.sessions.Remove(userID)
		return Prompt{Text: "Event creation canceled."}, true

	case ActionSelectDate:
		if s.Step != StepDate || !timeparse.ValidDate(arg) {
			return m.stepPrompt(s), true
		}
		s.Draft.Date = timeparse.NormalizeDate(arg)
		return m.advance(s, StepTime), true

	case ActionManualDate:
		if s.Step != StepDate {
			return m.stepPrompt(s), true
		}
		return Prompt{Text: "Type the date as DD.MM.YYYY:", Keyboard: titleKeyboard()}, true

	case ActionSelectTime:
		if s.Step != StepTime || !timeparse.ValidTime(arg) {
			return m.stepPrompt(s), true
		}
		s.Draft.Time = timeparse.NormalizeTime(arg)
		return m.advance(s, StepDuration), true

	case ActionManualTime:
		if s.Step != StepTime {
			return m.stepPrompt(s), true
		}
		return Prompt{Text: "Type the time as HH:MM:", Keyboard: titleKeyboard()}, true

	case ActionSelectDuration:
		if s.Step != StepDuration {
			return m.stepPrompt(s), true
		}
		hours, err := timeparse.ParseDuration(arg)
		if err != nil {
			return m.stepPrompt(s), true
		}
		s.Draft.DurationHours = hours
		s.Draft.DurationSet = true
		return m.advance(s, StepDescription), true

	case ActionManualDuration:
		if s.Step != StepDuration {
			return m.stepPrompt(s), true
		}
		return Prompt{Text: "Type the duration in hours (0.25 to 8):", Keyboard: titleKeyboard()}, true

	case ActionSkipDesc:
		if s.Step != StepDescription {
			return m.stepPrompt(s), true
		}
		s.Draft.Description = ""
		s.Draft.DescriptionSet = true
		return m.advance(s, StepMeetChoice), true

	case ActionMeetLink:
		if s.Step != StepMeetChoice {
			return m.stepPrompt(s), true
		}
		s.Draft.WantsMeetLink = arg == "yes"
		s.Step = StepConfirm
		return m.summaryPrompt(s), true

	case ActionEdit:
		if s.Step != StepConfirm {
			return m.stepPrompt(s), true
		}
		return Prompt{Text: "What would you like to change?", Keyboard: editKeyboard()}, true

	case ActionEditTitle, ActionEditDate, ActionEditTime, ActionEditDuration, ActionEditDesc:
		if s.Step != StepConfirm {
			return m.stepPrompt(s), true
		}
		s.Editing = true
		s.Step = map[string]Step{
			ActionEditTitle:    StepTitle,
			ActionEditDate:     StepDate,
			ActionEditTime:     StepTime,
			ActionEditDuration: StepDuration,
			ActionEditDesc:     StepDescription,
		}[action]
		return m.stepPrompt(s), true

	default:
		return Prompt{}, false
	}
}

// advance moves to the next step, or back to the summary when the user was
// editing a single field.
func (m *Manager) advance(s *Session, next Step) Prompt {
	if s.Editing {
		s.Editing = false
		s.Step = StepConfirm
		return m.summaryPrompt(s)
	}
	s.Step = next
	return m.stepPrompt(s)
}

// stepPrompt is the canonical prompt for the session's current step.
func (m *Manager) stepPrompt(s *Session) Prompt {
	switch s.Step {
	case StepTitle:
		return Prompt{Text: "Let's set up a meeting. What's it about?", Keyboard: titleKeyboard()}
	case StepDate:
		return Prompt{Text: "When is it? Pick a date or type one:", Keyboard: dateKeyboard(m.now().In(m.loc))}
	case StepTime:
		return Prompt{Text: "What time does it start?", Keyboard: timeKeyboard()}
	case StepDuration:
		return Prompt{Text: "How long will it take?", Keyboard: durationKeyboard()}
	case StepDescription:
		return Prompt{Text: "Add a description, or skip it:", Keyboard: descriptionKeyboard()}
	case StepMeetChoice:
		return Prompt{Text: "Attach a Google Meet link?", Keyboard: meetKeyboard()}
	default:
		return m.summaryPrompt(s)
	}
}

func (m *Manager) summaryPrompt(s *Session) Prompt {
	d := s.Draft
	description := d.Description
	if description == "" {
		description = "—"
	}
	meet := "no"
	if d.WantsMeetLink {
		meet = "yes"
	}
	text := fmt.Sprintf(
		"📋 Check the details:\n\n"+
			"Title: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Duration: %s\n"+
			"Description: %s\n"+
			"Google Meet: %s",
		d.Title, d.Date, d.Time, durationLabel(d.DurationHours), description, meet,
	)
	return Prompt{Text: text, Keyboard: confirmKeyboard()}
}

func durationLabel(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%d min", int(hours*60))
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + " h"
}
