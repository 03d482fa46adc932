package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/internal/model"
	"meeting-assistant/pkg/gcalendar"
)

// GenerateMeetLink creates a Meet link with no lasting calendar footprint. A
// short private event with a conference request is created, the link is read
// off it, and the event is deleted again. The link stays usable after the
// event is gone.
func (uc *implUseCase) GenerateMeetLink(ctx context.Context, sc model.Scope) (string, error) {
	client, err := uc.provider.ClientFor(ctx, sc.UserID)
	if err != nil {
		return "", err
	}

	start := uc.now().In(uc.loc).Add(15 * time.Minute)
	ev, err := client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		Summary:             "Meet link",
		StartTime:           start,
		EndTime:             start.Add(30 * time.Minute),
		Timezone:            uc.loc.String(),
		ConferenceRequestID: uuid.NewString(),
		Private:             true,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.GenerateMeetLink CreateEvent user=%d: %v", sc.UserID, err)
		return "", err
	}

	link := ev.HangoutLink

	if err := client.DeleteEvent(ctx, "", ev.ID); err != nil {
		// The link is already usable; the leftover event is only clutter.
		uc.l.Warnf(ctx, "uc.GenerateMeetLink DeleteEvent user=%d event=%s: %v", sc.UserID, ev.ID, err)
	}

	if link == "" {
		return "", meeting.ErrNoMeetLink
	}
	return link, nil
}
