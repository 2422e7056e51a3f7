package calendar

import (
	"context"
	"time"
)

// Event is a normalized calendar event. Start/End are zero when the upstream
// event had no resolvable time (e.g. malformed or missing); callers decide
// whether to discard such events.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// EventInput is the payload for creating a booking's mirror event.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Service abstracts the external calendar provider. Each bay has its own
// calendar; there are no transactional guarantees across calendars.
type Service interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
	InsertEvent(ctx context.Context, calendarID string, in EventInput) (string, error)
}
