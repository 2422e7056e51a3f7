package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	bookingRepo "fairway/database/repository/booking"
	"fairway/models"
	"fairway/services/calendar"

	"go.uber.org/zap"
)

// Reconciler repairs bookings whose external calendar mirror is missing or
// failed. It runs out of band (periodic sweep or operator trigger), never
// inline with a user request.
type Reconciler struct {
	Repo          bookingRepo.BookingRepository
	Calendar      calendar.Service
	Registry      *models.BayRegistry
	Policy        RetryPolicy
	Concurrency   int
	BatchCooldown time.Duration
	Logger        *zap.Logger
}

// BatchResult aggregates one sweep.
type BatchResult struct {
	SuccessCount int `json:"successCount"`
	FailedCount  int `json:"failedCount"`
}

// RetryBooking attempts to create the calendar event for one booking, with
// bounded exponential backoff. Already-synced bookings are a no-op. On
// success the event reference and the synced status are persisted together;
// on exhaustion the booking is marked retry_failed and left for a later
// sweep. The returned bool is the user-visible success of this pass.
func (r *Reconciler) RetryBooking(ctx context.Context, bookingID string) (bool, error) {
	booking, err := r.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return false, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if !booking.NeedsSync() {
		return true, nil
	}

	bay, ok := r.Registry.ByID(booking.BayID)
	if !ok {
		return false, fmt.Errorf("booking %s references unknown bay %s", bookingID, booking.BayID)
	}

	var eventID string
	err = r.Policy.Do(ctx, func(ctx context.Context) error {
		id, insertErr := r.Calendar.InsertEvent(ctx, bay.CalendarID, calendar.EventInput{
			Summary:     fmt.Sprintf("%s - %s", bay.DisplayName, booking.CustomerName),
			Description: fmt.Sprintf("Booking %s", booking.ID),
			Start:       booking.Start,
			End:         booking.End,
		})
		if insertErr != nil {
			r.Logger.Warn("calendar insert attempt failed",
				zap.String("bookingId", booking.ID),
				zap.Error(insertErr))
			return insertErr
		}
		eventID = id
		return nil
	})
	if err != nil {
		r.Logger.Error("all sync attempts exhausted",
			zap.String("bookingId", booking.ID),
			zap.Int("attempts", r.Policy.MaxAttempts),
			zap.Error(err))
		if updErr := r.Repo.UpdateSyncStatus(ctx, booking.ID, models.SyncStatusRetryFailed, ""); updErr != nil {
			return false, fmt.Errorf("failed to persist retry_failed for %s: %w", booking.ID, updErr)
		}
		return false, nil
	}

	if err := r.Repo.UpdateSyncStatus(ctx, booking.ID, models.SyncStatusSynced, eventID); err != nil {
		return false, fmt.Errorf("event %s created but status not persisted for %s: %w", eventID, booking.ID, err)
	}
	r.Logger.Info("booking calendar mirror repaired",
		zap.String("bookingId", booking.ID),
		zap.String("eventId", eventID))
	return true, nil
}

// BatchRetry sweeps up to limit bookings needing sync, processing them in
// windows of Concurrency with a cooldown between windows to respect the
// calendar provider's rate limits. Individual booking failures are counted,
// never raised; only a store failure aborts the sweep.
func (r *Reconciler) BatchRetry(ctx context.Context, limit int64) (BatchResult, error) {
	bookings, err := r.Repo.FindNeedingSync(ctx, limit)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to select bookings needing sync: %w", err)
	}
	if len(bookings) == 0 {
		return BatchResult{}, nil
	}

	var (
		mu     stdsync.Mutex
		result BatchResult
	)

	for start := 0; start < len(bookings); start += r.Concurrency {
		end := start + r.Concurrency
		if end > len(bookings) {
			end = len(bookings)
		}

		var wg stdsync.WaitGroup
		for _, b := range bookings[start:end] {
			wg.Add(1)
			go func(b models.Booking) {
				defer wg.Done()
				ok, err := r.RetryBooking(ctx, b.ID)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					r.Logger.Error("booking reconciliation errored",
						zap.String("bookingId", b.ID), zap.Error(err))
					result.FailedCount++
					return
				}
				if ok {
					result.SuccessCount++
				} else {
					result.FailedCount++
				}
			}(b)
		}
		wg.Wait()

		if end < len(bookings) {
			time.Sleep(r.BatchCooldown)
		}
	}

	r.Logger.Info("reconciliation sweep finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount))
	return result, nil
}
