package models

// Day period labels attached to slot offers.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
)

// SlotOffer is one offerable start time on a given day, annotated with the
// maximum contiguous whole-hour duration bookable from it. Produced fresh per
// request; never persisted.
type SlotOffer struct {
	StartTime         string `json:"startTime"` // "HH:mm" in the business timezone
	EndTime           string `json:"endTime"`
	MaxHours          int    `json:"maxHours"`
	Period            string `json:"period"`
	AvailableBayCount int    `json:"availableBayCount"`
}

// ClassifyPeriod maps a start hour to its period label.
func ClassifyPeriod(hour int) string {
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
