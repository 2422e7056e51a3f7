package booking

import (
	"context"
	"time"

	"fairway/models"
)

// CreateBookingInput carries a booking-finalization request for one bay-hour
// interval on a single day.
type CreateBookingInput struct {
	UserID       string
	CustomerName string
	Start        time.Time
	End          time.Time
}

// Service finalizes bookings: deterministic bay assignment followed by a
// best-effort calendar mirror.
type Service interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
}

// SyncEnqueuer queues a booking for out-of-band calendar reconciliation.
type SyncEnqueuer interface {
	EnqueueBookingSync(ctx context.Context, bookingID string) error
}
