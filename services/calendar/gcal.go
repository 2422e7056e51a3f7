package calendar

import (
	"context"
	"time"

	"fairway/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarService implements Service on top of the Google Calendar API.
type GoogleCalendarService struct {
	svc      *gcal.Service
	timeout  time.Duration
	location *time.Location
}

// NewGoogleCalendarService builds the client from a service-account
// credentials file. Every API call carries a bounded timeout.
func NewGoogleCalendarService(ctx context.Context, credentialsFile string, timeout time.Duration, loc *time.Location) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, err
	}
	return &GoogleCalendarService{svc: svc, timeout: timeout, location: loc}, nil
}

func (g *GoogleCalendarService) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UpstreamError{CalendarID: calendarID, Op: "list", Err: err}
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, Event{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   g.resolveTime(item.Start),
			End:     g.resolveTime(item.End),
		})
	}
	return events, nil
}

func (g *GoogleCalendarService) InsertEvent(ctx context.Context, calendarID string, in EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ev := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &gcal.EventDateTime{
			DateTime: in.Start.In(g.location).Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: in.End.In(g.location).Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
	}

	created, err := g.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", &UpstreamError{CalendarID: calendarID, Op: "insert", Err: err}
	}
	return created.Id, nil
}

// resolveTime extracts a usable instant from an event boundary. Timed events
// carry DateTime; all-day events carry only a civil Date, resolved in the
// business timezone. Unresolvable boundaries yield the zero time.
func (g *GoogleCalendarService) resolveTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return t
		}
		utils.GetLogger().Warn("unparseable event dateTime", zap.String("value", edt.DateTime), zap.Error(err))
		return time.Time{}
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, g.location)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
