// Package reminder periodically scans authorized users' calendars and
// notifies them shortly before their meetings start.
package reminder

import (
	"context"
	"time"

	"meeting-assistant/internal/meeting/format"
	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/log"
	"meeting-assistant/pkg/telegram"
)

// SettingsStore is the slice of the persistence layer the scheduler reads.
type SettingsStore interface {
	ListUsersWithGoogleToken() ([]int64, error)
	GetReminderSetting(userID int64) (minutes int, ok bool, err error)
}

// EventSource lists a user's near-future events. Satisfied by the meeting
// usecase.
type EventSource interface {
	UpcomingEvents(ctx context.Context, sc model.Scope, within time.Duration) ([]gcalendar.Event, error)
}

// Sender delivers a formatted reminder. Satisfied by *telegram.Bot.
type Sender interface {
	SendMessageWithMarkup(chatID int64, text string, parseMode string, markup *telegram.InlineKeyboardMarkup) error
}

// Scheduler runs the reminder tick loop. One failing user or event never
// stops the scan for the rest.
type Scheduler struct {
	l        log.Logger
	store    SettingsStore
	events   EventSource
	sender   Sender
	loc      *time.Location
	interval time.Duration
	lookAhead time.Duration

	// now is stubbed in tests.
	now func() time.Time
}

func New(l log.Logger, store SettingsStore, events EventSource, sender Sender, loc *time.Location, interval, lookAhead time.Duration) *Scheduler {
	return &Scheduler{
		l:         l,
		store:     store,
		events:    events,
		sender:    sender,
		loc:       loc,
		interval:  interval,
		lookAhead: lookAhead,
		now:       time.Now,
	}
}

// Run loops until the context is done. The loop is fixed-delay: each scan
// runs to completion before the next interval starts counting.
func (s *Scheduler) Run(ctx context.Context) {
	s.l.Infof(ctx, "reminder: scheduler started, interval=%s lookahead=%s", s.interval, s.lookAhead)
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			s.l.Infof(ctx, "reminder: scheduler stopped")
			return
		case <-timer.C:
		}
		s.Tick(ctx)
		timer.Reset(s.interval)
	}
}

// Tick scans every authorized user once.
func (s *Scheduler) Tick(ctx context.Context) {
	users, err := s.store.ListUsersWithGoogleToken()
	if err != nil {
		s.l.Errorf(ctx, "reminder: list users: %v", err)
		return
	}
	for _, userID := range users {
		s.scanUser(ctx, userID)
	}
}

func (s *Scheduler) scanUser(ctx context.Context, userID int64) {
	minutes, ok, err := s.store.GetReminderSetting(userID)
	if err != nil {
		s.l.Errorf(ctx, "reminder: setting user=%d: %v", userID, err)
		return
	}
	if !ok {
		return
	}

	events, err := s.events.UpcomingEvents(ctx, model.Scope{UserID: userID}, s.lookAhead)
	if err != nil {
		// Expired credentials land here too; the user just gets no
		// reminder until they re-authenticate.
		s.l.Warnf(ctx, "reminder: events user=%d: %v", userID, err)
		return
	}

	now := s.now().In(s.loc)
	lead := time.Duration(minutes) * time.Minute
	for _, ev := range events {
		// Fire when the due instant falls inside this tick's span. The
		// upper bound is exclusive so adjacent ticks never overlap.
		remaining := ev.StartTime.Sub(now)
		if remaining < lead || remaining >= lead+s.interval {
			continue
		}
		text, kb := format.Reminder(ev, minutes, now)
		if err := s.sender.SendMessageWithMarkup(userID, text, "MarkdownV2", kb); err != nil {
			s.l.Errorf(ctx, "reminder: send user=%d event=%s: %v", userID, ev.ID, err)
			continue
		}
		s.l.Infof(ctx, "reminder: fired user=%d event=%s start=%s", userID, ev.ID, ev.StartTime.Format(time.RFC3339))
	}
}
