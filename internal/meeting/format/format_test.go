package format

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/pkg/gcalendar"
)

func TestEscapeMarkdownV2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"1+1=2", `1\+1\=2`},
		{"a.b!c", `a\.b\!c`},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{`back\slash`, `back\\slash`},
	}
	for _, tc := range cases {
		if got := EscapeMarkdownV2(tc.in); got != tc.want {
			t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 150); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
	long := strings.Repeat("x", 200)
	got := Truncate(long, 150)
	if len(got) != 153 || !strings.HasSuffix(got, "...") {
		t.Errorf("Truncate long: len=%d suffix=%q", len(got), got[len(got)-3:])
	}
	exact := strings.Repeat("y", 150)
	if got := Truncate(exact, 150); got != exact {
		t.Error("exact-limit string must not be truncated")
	}
}

func TestFindMeetingLink(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"meet", "join here https://meet.google.com/abc-defg-hij thanks", "https://meet.google.com/abc-defg-hij"},
		{"zoom", "Zoom: https://us02web.zoom.us/j/1234567890?pwd=xyz", "https://us02web.zoom.us/j/1234567890?pwd=xyz"},
		{"teams", "https://teams.microsoft.com/l/meetup-join/19%3ameeting", "https://teams.microsoft.com/l/meetup-join/19%3ameeting"},
		{"none", "see you at the office", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindMeetingLink(tc.text); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVideoCallLink(t *testing.T) {
	t.Run("description zoom link wins over conference field", func(t *testing.T) {
		ev := gcalendar.Event{
			Description: "dial in via https://zoom.us/j/999",
			HangoutLink: "https://meet.google.com/abc-defg-hij",
		}
		if got := VideoCallLink(ev); got != "https://zoom.us/j/999" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("falls back to hangout link", func(t *testing.T) {
		ev := gcalendar.Event{HangoutLink: "https://meet.google.com/abc-defg-hij"}
		if got := VideoCallLink(ev); got != ev.HangoutLink {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no link anywhere", func(t *testing.T) {
		if got := VideoCallLink(gcalendar.Event{Description: "room 4"}); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestCalendarDeepLink(t *testing.T) {
	link := CalendarDeepLink("ev123")
	const prefix = "https://calendar.google.com/calendar/event?eid="
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("link = %q", link)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(link, prefix))
	if err != nil {
		t.Fatalf("eid not base64url: %v", err)
	}
	if string(decoded) != "ev123 primary" {
		t.Errorf("decoded eid = %q", decoded)
	}
}

func TestEvent(t *testing.T) {
	loc := time.UTC
	now := time.Date(2030, 2, 1, 9, 0, 0, 0, loc)

	t.Run("today shows bare clock time", func(t *testing.T) {
		ev := gcalendar.Event{
			ID:        "e1",
			Summary:   "Standup",
			StartTime: time.Date(2030, 2, 1, 9, 30, 0, 0, loc),
			EndTime:   time.Date(2030, 2, 1, 10, 0, 0, 0, loc),
		}
		text, kb := Event(ev, now)
		if !strings.Contains(text, `09:30 \- 10:00`) {
			t.Errorf("text = %q", text)
		}
		if strings.Contains(text, "01.02.2030") {
			t.Error("today's event must not show the date")
		}
		if kb == nil || len(kb.InlineKeyboard) != 1 {
			t.Fatalf("keyboard = %+v, want only the calendar button", kb)
		}
	})

	t.Run("other day shows full date", func(t *testing.T) {
		ev := gcalendar.Event{
			Summary:   "Planning",
			StartTime: time.Date(2030, 2, 3, 11, 0, 0, 0, loc),
			EndTime:   time.Date(2030, 2, 3, 12, 0, 0, 0, loc),
		}
		text, _ := Event(ev, now)
		if !strings.Contains(text, `03\.02\.2030 11:00`) {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("join button only with a real link", func(t *testing.T) {
		ev := gcalendar.Event{
			ID:          "e2",
			Summary:     "Sync",
			Description: "https://meet.google.com/abc-defg-hij",
			StartTime:   now,
			EndTime:     now.Add(time.Hour),
		}
		_, kb := Event(ev, now)
		if kb == nil || len(kb.InlineKeyboard) != 2 {
			t.Fatalf("keyboard = %+v, want join + calendar rows", kb)
		}
		if kb.InlineKeyboard[0][0].URL != "https://meet.google.com/abc-defg-hij" {
			t.Errorf("join url = %q", kb.InlineKeyboard[0][0].URL)
		}
	})

	t.Run("description is escaped and truncated", func(t *testing.T) {
		ev := gcalendar.Event{
			Summary:     "Long",
			Description: strings.Repeat("a", 200) + "!",
			StartTime:   now,
			EndTime:     now.Add(time.Hour),
		}
		text, _ := Event(ev, now)
		if strings.Contains(text, strings.Repeat("a", 151)) {
			t.Error("description not truncated")
		}
		if !strings.Contains(text, `\.\.\.`) {
			t.Error("ellipsis marker missing or unescaped")
		}
	})
}

func TestReminder(t *testing.T) {
	now := time.Date(2030, 2, 1, 9, 0, 0, 0, time.UTC)
	ev := gcalendar.Event{
		Summary:   "Standup",
		StartTime: now.Add(10 * time.Minute),
		EndTime:   now.Add(40 * time.Minute),
	}

	text, _ := Reminder(ev, 10, now)
	if !strings.Contains(text, "starts in 10 minutes") {
		t.Errorf("text = %q", text)
	}
	if !strings.Contains(text, "Standup") {
		t.Error("event body missing")
	}

	text, _ = Reminder(ev, 0, now)
	if !strings.Contains(text, "starting now") {
		t.Errorf("zero-minute text = %q", text)
	}
}

func TestCreated(t *testing.T) {
	t.Run("with meet link", func(t *testing.T) {
		text := Created(meeting.CreateOutput{
			Title:     "Standup",
			Date:      "01.02.2030",
			TimeRange: "09:30 - 10:00",
			MeetLink:  "https://meet.google.com/abc-defg-hij",
			EventLink: "https://calendar.google.com/event?eid=abc",
		})
		if !strings.Contains(text, "Standup") || !strings.Contains(text, `09:30 \- 10:00`) {
			t.Errorf("text = %q", text)
		}
		if !strings.Contains(text, "meet.google.com") {
			t.Error("meet link missing")
		}
	})

	t.Run("without meet link", func(t *testing.T) {
		text := Created(meeting.CreateOutput{Title: "Standup", Date: "01.02.2030", TimeRange: "09:30 - 10:00"})
		if !strings.Contains(text, "Without a Meet link") {
			t.Errorf("text = %q", text)
		}
	})
}
