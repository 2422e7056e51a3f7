package booking

import (
	"time"

	"fairway/models"
)

// AssignBay picks the bay for a requested interval. Bays are tried in the
// fixed order they are enumerated in configuration, and the first one with no
// conflicting busy interval wins. Returns false when every bay conflicts.
func AssignBay(start, end time.Time, bays []models.Bay, set *models.BusyIntervalSet) (*models.Bay, bool) {
	for i := range bays {
		if !hasConflict(start, end, set.ForBay(bays[i].ID)) {
			return &bays[i], true
		}
	}
	return nil, false
}

// hasConflict tests half-open interval overlap: an interval that exactly
// abuts the requested range does not conflict.
func hasConflict(start, end time.Time, busy []models.BusyInterval) bool {
	for _, iv := range busy {
		if start.Before(iv.End) && end.After(iv.Start) {
			return true
		}
	}
	return false
}
