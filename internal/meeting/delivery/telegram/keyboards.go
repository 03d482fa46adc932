package telegram

import pkgTelegram "meeting-assistant/pkg/telegram"

const menuText = `Here's what I can do:

/create_event — set up a meeting step by step
/today — today's remaining meetings
/tomorrow — tomorrow's meetings
/now — what's on right now
/next — your next meeting
/generate_meet_link — a standalone Google Meet link
/set_reminder_5 — remind 5 min before (also 0, 10, 15; repeat to turn off)
/relogin — reconnect Google Calendar
/logout — disconnect
/about — what this bot is`

func authKeyboard(url string) *pkgTelegram.InlineKeyboardMarkup {
	return &pkgTelegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]pkgTelegram.InlineKeyboardButton{
			{{Text: "🔐 Sign in with Google", URL: url}},
		},
	}
}
