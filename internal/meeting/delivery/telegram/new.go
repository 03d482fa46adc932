package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/internal/meeting/dialog"
	pkgLog "meeting-assistant/pkg/log"
	pkgTelegram "meeting-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// AuthService is the OAuth surface the handler drives. Satisfied by
// *auth.Service.
type AuthService interface {
	AuthURL(userID int64) string
	PendingAuth(userID int64) bool
	CompleteAuth(ctx context.Context, userID int64, code string) error
	Logout(ctx context.Context, userID int64) (bool, error)
	Authorized(userID int64) (bool, error)
}

// SettingsStore toggles reminder settings. Satisfied by *store.Store.
type SettingsStore interface {
	ToggleReminderSetting(userID int64, minutes int) (bool, error)
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc meeting.UseCase,
	bot *pkgTelegram.Bot,
	dialogs *dialog.Manager,
	authSvc AuthService,
	settings SettingsStore,
	loc *time.Location,
) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		dialogs:  dialogs,
		auth:     authSvc,
		settings: settings,
		loc:      loc,
	}
}

type handler struct {
	l        pkgLog.Logger
	uc       meeting.UseCase
	bot      *pkgTelegram.Bot
	dialogs  *dialog.Manager
	auth     AuthService
	settings SettingsStore
	loc      *time.Location

	// userLocks serializes update handling per user; the dialog session is
	// not safe for two in-flight handlers of the same user. Entries are
	// never reclaimed, one mutex per user seen.
	userLocks sync.Map // int64 -> *sync.Mutex
}

func (h *handler) lockUser(userID int64) func() {
	v, _ := h.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (h *handler) now() time.Time {
	return time.Now().In(h.loc)
}
