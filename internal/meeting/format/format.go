// Package format renders calendar events as Telegram MarkdownV2 messages.
// All transforms are pure.
package format

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/telegram"
	"meeting-assistant/pkg/timeparse"
)

// TruncateLimit caps free-text fields in rendered messages.
const TruncateLimit = 150

// Meeting-URL patterns, checked in order. First match wins.
var meetingLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://meet\.google\.com/[a-z0-9-]+`),
	regexp.MustCompile(`https://[a-zA-Z0-9.-]*zoom\.us/j/[^\s<>"]+`),
	regexp.MustCompile(`https://teams\.microsoft\.com/l/meetup-join/[^\s<>"]+`),
}

var markdownV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`,
	"(", `\(`, ")", `\)`, "~", `\~`, "`", "\\`",
	">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`,
	".", `\.`, "!", `\!`,
)

// EscapeMarkdownV2 escapes every MarkdownV2 reserved character in s once.
// Input is expected to be plain text, not already-escaped markup.
func EscapeMarkdownV2(s string) string {
	return markdownV2Replacer.Replace(s)
}

// Truncate cuts s to limit runes and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FindMeetingLink returns the first Meet, Zoom, or Teams URL found in text,
// or "" when there is none.
func FindMeetingLink(text string) string {
	for _, p := range meetingLinkPatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// VideoCallLink resolves the joinable call link for an event: a meeting URL
// in the description wins over the conference link Google attached. Returns
// "" when the event has no joinable link.
func VideoCallLink(ev gcalendar.Event) string {
	if link := FindMeetingLink(ev.Description); link != "" {
		return link
	}
	if link := FindMeetingLink(ev.Location); link != "" {
		return link
	}
	return ev.HangoutLink
}

// CalendarDeepLink builds the web link that opens the event in Google
// Calendar. The eid parameter is base64url("<eventID> <calendarID>") without
// padding.
func CalendarDeepLink(eventID string) string {
	eid := base64.RawURLEncoding.EncodeToString([]byte(eventID + " primary"))
	return "https://calendar.google.com/calendar/event?eid=" + eid
}

// Event renders one event as MarkdownV2 plus its action keyboard. The join
// button appears only when a real call link exists.
func Event(ev gcalendar.Event, now time.Time) (string, *telegram.InlineKeyboardMarkup) {
	var b strings.Builder

	b.WriteString("🕒 *" + EscapeMarkdownV2(displayTimeRange(ev, now)) + "*\n")

	title := ev.Summary
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	b.WriteString("📌 *" + EscapeMarkdownV2(title) + "*")

	if ev.Location != "" && FindMeetingLink(ev.Location) == "" {
		b.WriteString("\n📍 " + EscapeMarkdownV2(Truncate(ev.Location, TruncateLimit)))
	}
	if ev.Description != "" {
		b.WriteString("\n📝 " + EscapeMarkdownV2(Truncate(ev.Description, TruncateLimit)))
	}
	if len(ev.Attendees) > 0 {
		b.WriteString("\n👥 " + EscapeMarkdownV2(Truncate(strings.Join(ev.Attendees, ", "), TruncateLimit)))
	}

	return b.String(), eventKeyboard(ev)
}

// Reminder renders the same event body with a "starts in N minutes" preamble.
func Reminder(ev gcalendar.Event, minutesBefore int, now time.Time) (string, *telegram.InlineKeyboardMarkup) {
	body, kb := Event(ev, now)
	preamble := fmt.Sprintf("🔔 *Your meeting starts in %d minutes\\!*\n\n", minutesBefore)
	if minutesBefore == 0 {
		preamble = "🔔 *Your meeting is starting now\\!*\n\n"
	}
	return preamble + body, kb
}

// Created renders the success message after committing a new event.
func Created(out meeting.CreateOutput) string {
	var b strings.Builder
	b.WriteString("✅ *Event created\\!*\n\n")
	b.WriteString("📌 *" + EscapeMarkdownV2(out.Title) + "*\n")
	b.WriteString("📅 " + EscapeMarkdownV2(out.Date) + "\n")
	b.WriteString("🕒 " + EscapeMarkdownV2(out.TimeRange) + "\n")
	if out.Description != "" {
		b.WriteString("📝 " + EscapeMarkdownV2(Truncate(out.Description, TruncateLimit)) + "\n")
	}
	if out.MeetLink != "" {
		b.WriteString("🎥 [Join Google Meet](" + out.MeetLink + ")\n")
	} else {
		b.WriteString("🎥 Without a Meet link\n")
	}
	if out.EventLink != "" {
		b.WriteString("\n[Open in Google Calendar](" + out.EventLink + ")")
	}
	return b.String()
}

// displayTimeRange renders the start compactly when the event is today and
// fully otherwise. The end is always a bare clock time.
func displayTimeRange(ev gcalendar.Event, now time.Time) string {
	start := ev.StartTime.In(now.Location())
	end := ev.EndTime.In(now.Location())
	if ev.AllDay {
		return start.Format(timeparse.DateLayout) + " (all day)"
	}
	startStr := start.Format("15:04")
	if !sameDay(start, now) {
		startStr = start.Format(timeparse.DateLayout + " 15:04")
	}
	return startStr + " - " + end.Format("15:04")
}

func eventKeyboard(ev gcalendar.Event) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	if link := VideoCallLink(ev); link != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{{Text: "🎥 Join call", URL: link}})
	}
	if ev.ID != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{{Text: "📅 Open in Calendar", URL: CalendarDeepLink(ev.ID)}})
	}
	if len(rows) == 0 {
		return nil
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
