package availability

import (
	"context"
	"sync"
	"time"

	"fairway/models"
	"fairway/services/calendar"

	"go.uber.org/zap"
)

// Fetcher retrieves the busy intervals of every bay for one civil date from
// the external calendar service and normalizes them into an immutable
// snapshot.
type Fetcher struct {
	Calendar calendar.Service
	Registry *models.BayRegistry
	Location *time.Location
	Logger   *zap.Logger
}

// FetchBusyIntervals issues one list query per bay concurrently, scoped to
// the whole civil day in the business timezone. If any single bay query
// fails, the whole fetch fails: a bay that silently reported "free" because
// its query failed would offer a slot that is actually booked.
func (f *Fetcher) FetchBusyIntervals(ctx context.Context, date string) (*models.BusyIntervalSet, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", date, f.Location)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	bays := f.Registry.All()

	type bayResult struct {
		bayID     string
		intervals []models.BusyInterval
		err       error
	}

	results := make(chan bayResult, len(bays))
	var wg sync.WaitGroup
	for _, bay := range bays {
		wg.Add(1)
		go func(bay models.Bay) {
			defer wg.Done()
			events, err := f.Calendar.ListEvents(ctx, bay.CalendarID, dayStart, dayEnd)
			if err != nil {
				results <- bayResult{bayID: bay.ID, err: err}
				return
			}
			intervals := make([]models.BusyInterval, 0, len(events))
			for _, ev := range events {
				// Events without a resolvable start or end cannot block a bay.
				if ev.Start.IsZero() || ev.End.IsZero() {
					f.Logger.Warn("discarding event without resolvable times",
						zap.String("bayId", bay.ID),
						zap.String("eventId", ev.ID))
					continue
				}
				intervals = append(intervals, models.BusyInterval{
					BayID:         bay.ID,
					Start:         ev.Start,
					End:           ev.End,
					SourceEventID: ev.ID,
				})
			}
			results <- bayResult{bayID: bay.ID, intervals: intervals}
		}(bay)
	}
	wg.Wait()
	close(results)

	raw := make(map[string][]models.BusyInterval, len(bays))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		raw[res.bayID] = res.intervals
	}
	return models.NewBusyIntervalSet(date, raw, f.Logger), nil
}
