package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "fairway/database/repository/booking"
	"fairway/models"
	"fairway/services/availability"
	"fairway/services/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultService implements Service.
type DefaultService struct {
	Repo     bookingRepo.BookingRepository
	Fetcher  *availability.Fetcher
	Calendar calendar.Service
	Registry *models.BayRegistry
	Location *time.Location
	Queue    SyncEnqueuer
	Logger   *zap.Logger
}

// CreateBooking assigns a bay for the requested interval, persists the
// booking, and attempts to mirror it into the bay's external calendar. A
// failed mirror does not fail the booking: it is persisted with a degraded
// sync status and queued for reconciliation.
func (s *DefaultService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.Start.Before(in.End) {
		return nil, NewValidationError("booking end must be after start")
	}
	localStart := in.Start.In(s.Location)
	localEnd := in.End.In(s.Location)
	date := localStart.Format("2006-01-02")
	if localEnd.Add(-time.Nanosecond).Format("2006-01-02") != date {
		return nil, NewValidationError("booking must start and end on the same day")
	}

	set, err := s.Fetcher.FetchBusyIntervals(ctx, date)
	if err != nil {
		return nil, err
	}

	bay, ok := AssignBay(in.Start, in.End, s.Registry.All(), set)
	if !ok {
		return nil, NewConflictError("no bay available for the requested time")
	}

	booking := &models.Booking{
		ID:           uuid.New().String(),
		UserID:       in.UserID,
		CustomerName: in.CustomerName,
		BayID:        bay.ID,
		Date:         date,
		Start:        in.Start,
		End:          in.End,
		SyncStatus:   models.SyncStatusPending,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// Assigning the bay and inserting its event are two separate,
	// individually-retriable steps; the calendar has no transactional
	// guarantees across bays.
	eventID, err := s.Calendar.InsertEvent(ctx, bay.CalendarID, calendar.EventInput{
		Summary:     fmt.Sprintf("%s - %s", bay.DisplayName, in.CustomerName),
		Description: fmt.Sprintf("Booking %s", booking.ID),
		Start:       in.Start,
		End:         in.End,
	})
	if err != nil {
		s.Logger.Warn("calendar event creation failed, booking queued for sync",
			zap.String("bookingId", booking.ID),
			zap.String("bayId", bay.ID),
			zap.Error(err))
		booking.SyncStatus = models.SyncStatusFailed
		if err := s.Repo.UpdateSyncStatus(ctx, booking.ID, models.SyncStatusFailed, ""); err != nil {
			s.Logger.Error("failed to persist degraded sync status",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
		if s.Queue != nil {
			if err := s.Queue.EnqueueBookingSync(ctx, booking.ID); err != nil {
				s.Logger.Error("failed to enqueue booking sync",
					zap.String("bookingId", booking.ID), zap.Error(err))
			}
		}
		return booking, nil
	}

	booking.SyncStatus = models.SyncStatusSynced
	booking.CalendarEventID = eventID
	if err := s.Repo.UpdateSyncStatus(ctx, booking.ID, models.SyncStatusSynced, eventID); err != nil {
		s.Logger.Error("event created but sync status not persisted",
			zap.String("bookingId", booking.ID),
			zap.String("eventId", eventID),
			zap.Error(err))
	}
	return booking, nil
}

func (s *DefaultService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}
