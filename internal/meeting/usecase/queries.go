package usecase

import (
	"context"
	"time"

	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
)

const queryMaxResults = 20

// TodayEvents lists the remaining events of today, soonest first.
func (uc *implUseCase) TodayEvents(ctx context.Context, sc model.Scope) ([]gcalendar.Event, error) {
	now := uc.now().In(uc.loc)
	return uc.listWindow(ctx, sc.UserID, now, endOfDay(now))
}

// TomorrowEvents lists all of tomorrow's events.
func (uc *implUseCase) TomorrowEvents(ctx context.Context, sc model.Scope) ([]gcalendar.Event, error) {
	start := startOfDay(uc.now().In(uc.loc)).AddDate(0, 0, 1)
	return uc.listWindow(ctx, sc.UserID, start, endOfDay(start))
}

// CurrentEvent returns the event in progress right now, or nil when the
// user is free. All-day events are not considered "in progress".
func (uc *implUseCase) CurrentEvent(ctx context.Context, sc model.Scope) (*gcalendar.Event, error) {
	now := uc.now().In(uc.loc)
	events, err := uc.listWindow(ctx, sc.UserID, startOfDay(now), endOfDay(now))
	if err != nil {
		return nil, err
	}
	for i := range events {
		ev := events[i]
		if ev.AllDay {
			continue
		}
		if !ev.StartTime.After(now) && ev.EndTime.After(now) {
			return &ev, nil
		}
	}
	return nil, nil
}

// NextEvent returns the nearest event that has not started yet, or nil.
func (uc *implUseCase) NextEvent(ctx context.Context, sc model.Scope) (*gcalendar.Event, error) {
	now := uc.now().In(uc.loc)
	events, err := uc.listWindow(ctx, sc.UserID, now, time.Time{})
	if err != nil {
		return nil, err
	}
	for i := range events {
		ev := events[i]
		if ev.AllDay {
			continue
		}
		if ev.StartTime.After(now) {
			return &ev, nil
		}
	}
	return nil, nil
}

// UpcomingEvents lists events starting within the given window from now.
func (uc *implUseCase) UpcomingEvents(ctx context.Context, sc model.Scope, within time.Duration) ([]gcalendar.Event, error) {
	now := uc.now().In(uc.loc)
	events, err := uc.listWindow(ctx, sc.UserID, now, now.Add(within))
	if err != nil {
		return nil, err
	}
	// The API window matches by any overlap; keep only events that actually
	// start inside it.
	upcoming := events[:0]
	for _, ev := range events {
		if ev.AllDay || ev.StartTime.Before(now) {
			continue
		}
		upcoming = append(upcoming, ev)
	}
	return upcoming, nil
}

func (uc *implUseCase) listWindow(ctx context.Context, userID int64, min, max time.Time) ([]gcalendar.Event, error) {
	client, err := uc.provider.ClientFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := client.ListEvents(ctx, gcalendar.ListEventsRequest{
		TimeMin:    min,
		TimeMax:    max,
		MaxResults: queryMaxResults,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.listWindow user=%d: %v", userID, err)
		return nil, err
	}
	return events, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
