package models

// Bay represents one simulator bay: a bookable unit backed by its own
// external calendar.
type Bay struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	CalendarID  string `json:"calendarId"`
}

// BayRegistry is the fixed, enumerated set of bays, built once at startup.
// Iteration order is the deterministic assignment priority order.
type BayRegistry struct {
	bays []Bay
	byID map[string]Bay
}

// NewBayRegistry builds the registry from the configured bay list.
func NewBayRegistry(bays []Bay) *BayRegistry {
	byID := make(map[string]Bay, len(bays))
	for _, b := range bays {
		byID[b.ID] = b
	}
	return &BayRegistry{bays: bays, byID: byID}
}

// All returns the bays in priority order. Callers must not mutate the slice.
func (r *BayRegistry) All() []Bay {
	return r.bays
}

// ByID looks up a bay by its identifier.
func (r *BayRegistry) ByID(id string) (Bay, bool) {
	b, ok := r.byID[id]
	return b, ok
}
