package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/internal/meeting/dialog"
	"meeting-assistant/internal/meeting/format"
	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
	pkgResponse "meeting-assistant/pkg/response"
	pkgTelegram "meeting-assistant/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine; Telegram expects an answer within a few seconds and
// calendar calls can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		go func() {
			h.processCallback(context.Background(), cb)
		}()
	case update.Message != nil:
		msg := update.Message
		go func() {
			h.processMessage(context.Background(), msg)
		}()
	default:
		pkgResponse.Accepted(c, "ignored")
		return
	}

	pkgResponse.Accepted(c, "accepted")
}

// processMessage handles one typed message or command.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) {
	if msg.Text == "" || msg.From == nil || msg.Chat == nil {
		return
	}
	sc := model.Scope{UserID: msg.From.ID, Username: msg.From.Username}
	userID := sc.UserID
	chatID := msg.Chat.ID

	unlock := h.lockUser(userID)
	defer unlock()

	cmd := msg.Command()
	if cmd != "" {
		// Any command other than the in-dialog /skip abandons a draft in
		// progress, explicitly and with a notice.
		if cmd != "/skip" && h.dialogs.Cancel(userID) {
			h.send(ctx, chatID, "Your event draft was discarded.")
		}
		h.handleCommand(ctx, sc, chatID, cmd)
		return
	}

	// A user who just requested a login link is pasting the code back.
	if h.auth.PendingAuth(userID) {
		h.completeAuth(ctx, userID, chatID, msg.Text)
		return
	}

	if prompt, ok := h.dialogs.HandleText(userID, msg.Text); ok {
		h.sendPrompt(ctx, chatID, 0, prompt)
		return
	}

	h.send(ctx, chatID, "I didn't catch that. "+menuText)
}

func (h *handler) handleCommand(ctx context.Context, sc model.Scope, chatID int64, cmd string) {
	userID := sc.UserID
	switch cmd {
	case "/start":
		h.send(ctx, chatID, "👋 Hi! I'm your meeting assistant.\n\n"+menuText)
		if ok, err := h.auth.Authorized(userID); err == nil && !ok {
			h.sendAuthPrompt(ctx, userID, chatID)
		}

	case "/about":
		h.send(ctx, chatID, "I create Google Calendar events, generate Meet links, and remind you before meetings start.\n\n"+menuText)

	case "/create_event":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		h.sendPrompt(ctx, chatID, 0, h.dialogs.Start(userID))

	case "/today":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		events, err := h.uc.TodayEvents(ctx, sc)
		h.replyEventList(ctx, userID, chatID, events, err, "No more meetings today 🎉")

	case "/tomorrow":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		events, err := h.uc.TomorrowEvents(ctx, sc)
		h.replyEventList(ctx, userID, chatID, events, err, "Nothing scheduled for tomorrow.")

	case "/now":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		ev, err := h.uc.CurrentEvent(ctx, sc)
		h.replySingleEvent(ctx, userID, chatID, ev, err, "You're free right now.")

	case "/next":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		ev, err := h.uc.NextEvent(ctx, sc)
		h.replySingleEvent(ctx, userID, chatID, ev, err, "No upcoming meetings.")

	case "/generate_meet_link":
		if !h.requireAuth(ctx, userID, chatID) {
			return
		}
		link, err := h.uc.GenerateMeetLink(ctx, sc)
		if err != nil {
			h.replyError(ctx, userID, chatID, err)
			return
		}
		h.send(ctx, chatID, "🎥 Here's your Meet link:\n"+link)

	case "/set_reminder_0", "/set_reminder_5", "/set_reminder_10", "/set_reminder_15":
		minutes := reminderMinutes(cmd)
		enabled, err := h.settings.ToggleReminderSetting(userID, minutes)
		if err != nil {
			h.replyError(ctx, userID, chatID, err)
			return
		}
		if enabled {
			if minutes == 0 {
				h.send(ctx, chatID, "🔔 I'll ping you right when a meeting starts.")
			} else {
				h.send(ctx, chatID, fmt.Sprintf("🔔 I'll remind you %d minutes before each meeting.", minutes))
			}
		} else {
			h.send(ctx, chatID, "🔕 Reminders are off.")
		}

	case "/relogin":
		h.sendAuthPrompt(ctx, userID, chatID)

	case "/logout":
		existed, err := h.auth.Logout(ctx, userID)
		if err != nil {
			h.replyError(ctx, userID, chatID, err)
			return
		}
		if existed {
			h.send(ctx, chatID, "👋 Disconnected from Google Calendar.")
		} else {
			h.send(ctx, chatID, "You weren't signed in.")
		}

	case "/skip":
		if prompt, ok := h.dialogs.HandleAction(userID, dialog.ActionSkipDesc, ""); ok {
			prompt.Edit = false
			h.sendPrompt(ctx, chatID, 0, prompt)
			return
		}
		h.send(ctx, chatID, "Nothing to skip right now.")

	default:
		h.send(ctx, chatID, "I don't know that command.\n\n"+menuText)
	}
}

// processCallback handles one inline-button press.
func (h *handler) processCallback(ctx context.Context, cb *pkgTelegram.CallbackQuery) {
	if cb.From == nil {
		return
	}
	if err := h.bot.AnswerCallbackQuery(cb.ID, "", false); err != nil {
		h.l.Warnf(ctx, "telegram handler: answer callback: %v", err)
	}

	sc := model.Scope{UserID: cb.From.ID, Username: cb.From.Username}
	userID := sc.UserID
	var chatID, messageID int64
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = cb.Message.Chat.ID
		messageID = cb.Message.MessageID
	}
	if chatID == 0 {
		chatID = userID
	}

	unlock := h.lockUser(userID)
	defer unlock()

	action, arg := splitCallback(cb.Data)
	switch action {
	case dialog.ActionConfirm:
		h.confirmEvent(ctx, sc, chatID, messageID)

	case dialog.ActionBackToMenu:
		h.dialogs.Cancel(userID)
		h.edit(ctx, chatID, messageID, menuText)

	default:
		prompt, ok := h.dialogs.HandleAction(userID, action, arg)
		if !ok {
			h.edit(ctx, chatID, messageID, "This menu has expired. Send /create_event to start over.")
			return
		}
		h.sendPrompt(ctx, chatID, messageID, prompt)
	}
}

// confirmEvent commits the finished draft. The session is gone afterwards
// whether the backend call worked or not.
func (h *handler) confirmEvent(ctx context.Context, sc model.Scope, chatID, messageID int64) {
	draft, ok := h.dialogs.TakeDraft(sc.UserID)
	if !ok {
		h.edit(ctx, chatID, messageID, "There's nothing to confirm. Send /create_event to start over.")
		return
	}

	out, err := h.uc.Create(ctx, sc, meeting.CreateInput{
		Title:         draft.Title,
		Date:          draft.Date,
		Time:          draft.Time,
		DurationHours: draft.DurationHours,
		Description:   draft.Description,
		WantsMeetLink: draft.WantsMeetLink,
	})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: create event user=%d: %v", sc.UserID, err)
		h.edit(ctx, chatID, messageID, "❌ Couldn't create the event: "+userMessage(err))
		return
	}

	if err := h.bot.EditMessageText(chatID, messageID, format.Created(out), "MarkdownV2", nil); err != nil {
		h.l.Warnf(ctx, "telegram handler: edit confirmation user=%d: %v", sc.UserID, err)
		h.sendMarkdown(ctx, chatID, format.Created(out), nil)
	}
}

func (h *handler) completeAuth(ctx context.Context, userID, chatID int64, code string) {
	if err := h.auth.CompleteAuth(ctx, userID, strings.TrimSpace(code)); err != nil {
		h.send(ctx, chatID, "❌ That code didn't work. Use /relogin to get a fresh link and try again.")
		return
	}
	h.send(ctx, chatID, "✅ Google Calendar connected! Try /create_event or /today.")
}

// requireAuth sends the sign-in prompt and returns false when the user has
// no stored credential.
func (h *handler) requireAuth(ctx context.Context, userID, chatID int64) bool {
	ok, err := h.auth.Authorized(userID)
	if err != nil {
		h.replyError(ctx, userID, chatID, err)
		return false
	}
	if !ok {
		h.sendAuthPrompt(ctx, userID, chatID)
		return false
	}
	return true
}

func (h *handler) sendAuthPrompt(ctx context.Context, userID, chatID int64) {
	url := h.auth.AuthURL(userID)
	if err := h.bot.SendMessageWithMarkup(chatID,
		"🔐 Connect your Google Calendar:\n\n1. Open the link below\n2. Allow access\n3. Paste the code you get back here",
		"", authKeyboard(url)); err != nil {
		h.l.Errorf(ctx, "telegram handler: send auth prompt user=%d: %v", userID, err)
	}
}

func (h *handler) replyEventList(ctx context.Context, userID, chatID int64, events []gcalendar.Event, err error, emptyText string) {
	if err != nil {
		h.replyError(ctx, userID, chatID, err)
		return
	}
	if len(events) == 0 {
		h.send(ctx, chatID, emptyText)
		return
	}
	now := h.now()
	for _, ev := range events {
		text, kb := format.Event(ev, now)
		h.sendMarkdown(ctx, chatID, text, kb)
	}
}

func (h *handler) replySingleEvent(ctx context.Context, userID, chatID int64, ev *gcalendar.Event, err error, emptyText string) {
	if err != nil {
		h.replyError(ctx, userID, chatID, err)
		return
	}
	if ev == nil {
		h.send(ctx, chatID, emptyText)
		return
	}
	text, kb := format.Event(*ev, h.now())
	h.sendMarkdown(ctx, chatID, text, kb)
}

func (h *handler) replyError(ctx context.Context, userID, chatID int64, err error) {
	if errors.Is(err, meeting.ErrNotAuthenticated) {
		h.sendAuthPrompt(ctx, userID, chatID)
		return
	}
	h.l.Errorf(ctx, "telegram handler: user=%d: %v", userID, err)
	h.send(ctx, chatID, "❌ "+userMessage(err))
}

// sendPrompt delivers a dialog prompt, editing the tapped message in place
// when the prompt asks for it.
func (h *handler) sendPrompt(ctx context.Context, chatID, messageID int64, p dialog.Prompt) {
	if p.Edit && messageID != 0 {
		if err := h.bot.EditMessageText(chatID, messageID, p.Text, "", p.Keyboard); err == nil {
			return
		}
		// Editing fails when the message is too old; fall through to a
		// fresh message.
	}
	if err := h.bot.SendMessageWithMarkup(chatID, p.Text, "", p.Keyboard); err != nil {
		h.l.Errorf(ctx, "telegram handler: send prompt chat=%d: %v", chatID, err)
	}
}

func (h *handler) send(ctx context.Context, chatID int64, text string) {
	if err := h.bot.SendMessage(chatID, text); err != nil {
		h.l.Errorf(ctx, "telegram handler: send chat=%d: %v", chatID, err)
	}
}

func (h *handler) sendMarkdown(ctx context.Context, chatID int64, text string, kb *pkgTelegram.InlineKeyboardMarkup) {
	if err := h.bot.SendMessageWithMarkup(chatID, text, "MarkdownV2", kb); err != nil {
		h.l.Errorf(ctx, "telegram handler: send chat=%d: %v", chatID, err)
	}
}

func (h *handler) edit(ctx context.Context, chatID, messageID int64, text string) {
	if messageID != 0 {
		if err := h.bot.EditMessageText(chatID, messageID, text, "", nil); err == nil {
			return
		}
	}
	h.send(ctx, chatID, text)
}

// splitCallback parses an "action[:argument]" payload.
func splitCallback(data string) (action, arg string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func reminderMinutes(cmd string) int {
	switch cmd {
	case "/set_reminder_5":
		return 5
	case "/set_reminder_10":
		return 10
	case "/set_reminder_15":
		return 15
	default:
		return 0
	}
}
