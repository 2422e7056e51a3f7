package models

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// BusyInterval is a half-open time range [Start, End) during which a bay is
// already booked, as mirrored from its external calendar.
type BusyInterval struct {
	BayID         string    `json:"bayId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	SourceEventID string    `json:"sourceEventId,omitempty"`
}

// BusyIntervalSet is an immutable per-request snapshot of busy intervals for
// exactly one civil date, keyed by bay. It is built once by the fetcher and
// shared by slot computation and bay assignment; never mutated afterwards.
type BusyIntervalSet struct {
	date  string
	byBay map[string][]BusyInterval
}

// NewBusyIntervalSet normalizes raw per-bay intervals into a snapshot:
// malformed records (start >= end) are dropped with a warning, the rest are
// sorted and coalesced so that overlapping or touching intervals never
// double-count a gap.
func NewBusyIntervalSet(date string, raw map[string][]BusyInterval, logger *zap.Logger) *BusyIntervalSet {
	byBay := make(map[string][]BusyInterval, len(raw))
	for bayID, intervals := range raw {
		valid := make([]BusyInterval, 0, len(intervals))
		for _, iv := range intervals {
			if !iv.Start.Before(iv.End) {
				if logger != nil {
					logger.Warn("dropping malformed busy interval",
						zap.String("bayId", bayID),
						zap.String("eventId", iv.SourceEventID),
						zap.Time("start", iv.Start),
						zap.Time("end", iv.End))
				}
				continue
			}
			valid = append(valid, iv)
		}
		byBay[bayID] = mergeIntervals(valid)
	}
	return &BusyIntervalSet{date: date, byBay: byBay}
}

// Date returns the civil date this snapshot was built for.
func (s *BusyIntervalSet) Date() string {
	return s.date
}

// ForBay returns the ordered, coalesced busy intervals of one bay.
// Callers must not mutate the returned slice.
func (s *BusyIntervalSet) ForBay(bayID string) []BusyInterval {
	return s.byBay[bayID]
}

// mergeIntervals sorts by start and coalesces overlapping or touching
// intervals into one.
func mergeIntervals(intervals []BusyInterval) []BusyInterval {
	if len(intervals) <= 1 {
		return intervals
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	merged := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
