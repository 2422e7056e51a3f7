package availability

import (
	"fmt"
	"time"

	"fairway/models"
)

// Params are the business parameters for slot computation. All values come
// from configuration; there are no hidden defaults.
type Params struct {
	OpeningHour      int // civil hour in the business timezone, e.g. 10
	ClosingHour      int // e.g. 23
	MaxSlotHours     int // cap on a single offer's duration, e.g. 5
	MinUsableMinutes int // offers shorter than this are dropped, e.g. 15
	StepMinutes      int // granularity of candidate start times, e.g. 60
	Location         *time.Location
}

// ComputeSlots computes the offerable start times for one civil date. Pure
// function: no I/O, never fails. date is "YYYY-MM-DD"; now is the reference
// instant used for the same-day lead-time rule; the busy interval snapshot
// must cover the same date.
func ComputeSlots(date string, now time.Time, bays []models.Bay, set *models.BusyIntervalSet, p Params) []models.SlotOffer {
	dayStart, err := time.ParseInLocation("2006-01-02", date, p.Location)
	if err != nil {
		return nil
	}

	// Same-day requests may not start in the current or an already-started
	// hour; other days open at the configured opening hour.
	earliestHour := p.OpeningHour
	localNow := now.In(p.Location)
	if localNow.Format("2006-01-02") == date && localNow.Hour()+1 > earliestHour {
		earliestHour = localNow.Hour() + 1
	}

	closeMin := p.ClosingHour * 60
	busyByBay := make(map[string][]minuteRange, len(bays))
	for _, bay := range bays {
		busyByBay[bay.ID] = toMinuteRanges(set.ForBay(bay.ID), dayStart)
	}

	var slots []models.SlotOffer
	for t := earliestHour * 60; t <= (p.ClosingHour-1)*60; t += p.StepMinutes {
		maxRun := 0
		available := 0
		for _, bay := range bays {
			run, free := freeRunAt(t, busyByBay[bay.ID], closeMin, p.MaxSlotHours*60)
			if !free {
				continue
			}
			available++
			if run > maxRun {
				maxRun = run
			}
		}
		if available == 0 || maxRun < p.MinUsableMinutes {
			continue
		}
		// Bookings are sold in whole-hour increments; a partial final hour
		// is not offered.
		hours := maxRun / 60
		if hours < 1 {
			continue
		}
		slots = append(slots, models.SlotOffer{
			StartTime:         formatMinutes(t),
			EndTime:           formatMinutes(t + hours*60),
			MaxHours:          hours,
			Period:            models.ClassifyPeriod(t / 60),
			AvailableBayCount: available,
		})
	}
	return slots
}

// minuteRange is a busy interval expressed as minutes from midnight of the
// requested date.
type minuteRange struct {
	start int
	end   int
}

func toMinuteRanges(intervals []models.BusyInterval, dayStart time.Time) []minuteRange {
	ranges := make([]minuteRange, 0, len(intervals))
	for _, iv := range intervals {
		ranges = append(ranges, minuteRange{
			start: int(iv.Start.Sub(dayStart).Minutes()),
			end:   int(iv.End.Sub(dayStart).Minutes()),
		})
	}
	return ranges
}

// freeRunAt reports whether the bay is free at minute t, and if so for how
// many contiguous minutes it can be booked: the gap to its next busy
// interval (or to closing), capped at maxRunMin and at closing.
func freeRunAt(t int, busy []minuteRange, closeMin, maxRunMin int) (int, bool) {
	nextStart := closeMin
	for _, r := range busy {
		if r.start <= t && t < r.end {
			return 0, false
		}
		if r.start >= t && r.start < nextStart {
			nextStart = r.start
		}
	}
	run := nextStart - t
	if run > closeMin-t {
		run = closeMin - t
	}
	if run > maxRunMin {
		run = maxRunMin
	}
	if run < 0 {
		run = 0
	}
	return run, true
}

func formatMinutes(t int) string {
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}
