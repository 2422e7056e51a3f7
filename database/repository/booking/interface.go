package bookingRepo

import (
	"context"

	"fairway/models"
)

// BookingRepository is the persistence contract the sync core depends on.
// Booking lifecycle beyond creation and sync-status updates (cancellation,
// amendments) belongs to other parts of the portal.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateSyncStatus persists a new sync status, and the calendar event
	// reference together with it when eventID is non-empty. The two are
	// written in one update so a synced status can never be observed
	// without its event reference.
	UpdateSyncStatus(ctx context.Context, id, status, eventID string) error
	// FindNeedingSync returns up to limit bookings whose calendar mirror is
	// missing: status pending or failed and no event reference.
	FindNeedingSync(ctx context.Context, limit int64) ([]models.Booking, error)
}
