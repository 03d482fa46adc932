package usecase

import (
	"time"

	"meeting-assistant/internal/meeting"
	"meeting-assistant/pkg/log"
)

// implUseCase is the private implementation of meeting.UseCase.
type implUseCase struct {
	l        log.Logger
	provider meeting.CalendarProvider
	loc      *time.Location

	// now is stubbed in tests.
	now func() time.Time
}

// New creates a new meeting UseCase implementation. All calendar math is
// done in loc, the assistant's working timezone.
func New(l log.Logger, provider meeting.CalendarProvider, loc *time.Location) *implUseCase {
	return &implUseCase{
		l:        l,
		provider: provider,
		loc:      loc,
		now:      time.Now,
	}
}
