package models

import "time"

// Calendar sync states of a booking. retry_failed is not terminal: a later
// sweep or a manual operator retry may still pick the booking up.
const (
	SyncStatusPending     = "pending"
	SyncStatusSynced      = "synced"
	SyncStatusFailed      = "failed"
	SyncStatusRetryFailed = "retry_failed"
)

// Booking represents a confirmed bay booking and the reconciliation state of
// its mirrored event in the external calendar.
type Booking struct {
	ID              string    `bson:"id" json:"id"`                           // Unique booking identifier (UUID)
	UserID          string    `bson:"user_id" json:"user_id"`                 // User who made the booking
	CustomerName    string    `bson:"customer_name" json:"customer_name"`     // Display name for the calendar event
	BayID           string    `bson:"bay_id" json:"bay_id"`                   // Assigned bay
	Date            string    `bson:"date" json:"date"`                       // Booking date in "YYYY-MM-DD" format
	Start           time.Time `bson:"start" json:"start"`                     // Booking start instant
	End             time.Time `bson:"end" json:"end"`                         // Booking end instant
	SyncStatus      string    `bson:"sync_status" json:"sync_status"`         // pending | synced | failed | retry_failed
	CalendarEventID string    `bson:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// NeedsSync reports whether the booking still lacks a calendar mirror.
func (b *Booking) NeedsSync() bool {
	return b.CalendarEventID == "" && b.SyncStatus != SyncStatusSynced
}
