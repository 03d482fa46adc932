package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/timeparse"
)

// Create commits a finished draft to the user's primary calendar. When the
// draft asks for a Meet link, a conference request is attached to the event
// and the resulting link is returned alongside the calendar link.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input meeting.CreateInput) (meeting.CreateOutput, error) {
	if err := validateDraft(input); err != nil {
		return meeting.CreateOutput{}, err
	}

	date := timeparse.NormalizeDate(input.Date)
	start, err := timeparse.CombineDateTime(date, input.Time, uc.loc)
	if err != nil {
		return meeting.CreateOutput{}, fmt.Errorf("%w: %v", meeting.ErrInvalidDraft, err)
	}
	end := start.Add(timeparse.DurationFromHours(input.DurationHours))

	client, err := uc.provider.ClientFor(ctx, sc.UserID)
	if err != nil {
		return meeting.CreateOutput{}, err
	}

	req := gcalendar.CreateEventRequest{
		Summary:     input.Title,
		Description: input.Description,
		StartTime:   start,
		EndTime:     end,
		Timezone:    uc.loc.String(),
	}
	if input.WantsMeetLink {
		req.ConferenceRequestID = uuid.NewString()
	}

	ev, err := client.CreateEvent(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateEvent user=%d: %v", sc.UserID, err)
		return meeting.CreateOutput{}, err
	}

	out := meeting.CreateOutput{
		EventID:     ev.ID,
		EventLink:   ev.HtmlLink,
		MeetLink:    ev.HangoutLink,
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		TimeRange:   fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
		Start:       start,
		End:         end,
	}
	uc.l.Infof(ctx, "uc.Create user=%d event=%s at %s", sc.UserID, ev.ID, start.Format("02.01.2006 15:04"))
	return out, nil
}

func validateDraft(input meeting.CreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: empty title", meeting.ErrInvalidDraft)
	}
	if !timeparse.ValidDate(input.Date) {
		return fmt.Errorf("%w: bad date %q", meeting.ErrInvalidDraft, input.Date)
	}
	if !timeparse.ValidTime(input.Time) {
		return fmt.Errorf("%w: bad time %q", meeting.ErrInvalidDraft, input.Time)
	}
	if input.DurationHours < timeparse.MinDurationHours || input.DurationHours > timeparse.MaxDurationHours {
		return fmt.Errorf("%w: bad duration %v", meeting.ErrInvalidDraft, input.DurationHours)
	}
	return nil
}
