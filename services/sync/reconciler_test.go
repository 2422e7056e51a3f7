package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	"fairway/models"
	"fairway/services/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       stdsync.Mutex
	bookings map[string]*models.Booking
	findErr  error
	updErr   error
}

func newFakeRepo(bookings ...*models.Booking) *fakeBookingRepo {
	m := make(map[string]*models.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *b
	return &copy, nil
}

func (f *fakeBookingRepo) UpdateSyncStatus(ctx context.Context, id, status, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return f.updErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.SyncStatus = status
	if eventID != "" {
		b.CalendarEventID = eventID
	}
	return nil
}

func (f *fakeBookingRepo) FindNeedingSync(ctx context.Context, limit int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.NeedsSync() && (b.SyncStatus == models.SyncStatusPending || b.SyncStatus == models.SyncStatusFailed) {
			out = append(out, *b)
			if int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

// flakyCalendar fails the first failures inserts, then succeeds.
type flakyCalendar struct {
	mu       stdsync.Mutex
	failures int
	inserts  int
}

func (f *flakyCalendar) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]calendar.Event, error) {
	return nil, nil
}

func (f *flakyCalendar) InsertEvent(ctx context.Context, calendarID string, in calendar.EventInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.inserts <= f.failures {
		return "", &calendar.UpstreamError{CalendarID: calendarID, Op: "insert", Err: errors.New("rate limited")}
	}
	return "event-123", nil
}

func failedBooking(id string) *models.Booking {
	return &models.Booking{
		ID:           id,
		UserID:       "user-1",
		CustomerName: "Somchai",
		BayID:        "bay-1",
		Date:         "2026-09-15",
		Start:        time.Date(2026, 9, 15, 13, 0, 0, 0, time.UTC),
		End:          time.Date(2026, 9, 15, 15, 0, 0, 0, time.UTC),
		SyncStatus:   models.SyncStatusFailed,
	}
}

func newReconciler(repo *fakeBookingRepo, cal calendar.Service) *Reconciler {
	reg := models.NewBayRegistry([]models.Bay{
		{ID: "bay-1", DisplayName: "Bay 1", CalendarID: "cal-1"},
		{ID: "bay-2", DisplayName: "Bay 2", CalendarID: "cal-2"},
	})
	return &Reconciler{
		Repo:          repo,
		Calendar:      cal,
		Registry:      reg,
		Policy:        RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, BackoffMultiplier: 2},
		Concurrency:   3,
		BatchCooldown: time.Millisecond,
		Logger:        zap.NewNop(),
	}
}

func TestRetryBooking_SucceedsAfterTransientFailures(t *testing.T) {
	repo := newFakeRepo(failedBooking("b-1"))
	cal := &flakyCalendar{failures: 2}
	rec := newReconciler(repo, cal)

	ok, err := rec.RetryBooking(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := repo.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.SyncStatusSynced, stored.SyncStatus)
	assert.Equal(t, "event-123", stored.CalendarEventID)
	assert.Equal(t, 3, cal.inserts)
}

func TestRetryBooking_ExhaustionMarksRetryFailed(t *testing.T) {
	repo := newFakeRepo(failedBooking("b-1"))
	cal := &flakyCalendar{failures: 100}
	rec := newReconciler(repo, cal)

	ok, err := rec.RetryBooking(context.Background(), "b-1")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, _ := repo.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.SyncStatusRetryFailed, stored.SyncStatus)
	assert.Empty(t, stored.CalendarEventID)
	assert.Equal(t, 3, cal.inserts) // bounded by MaxAttempts
}

func TestRetryBooking_IdempotentOnSyncedBooking(t *testing.T) {
	synced := failedBooking("b-1")
	synced.SyncStatus = models.SyncStatusSynced
	synced.CalendarEventID = "event-999"
	repo := newFakeRepo(synced)
	cal := &flakyCalendar{}
	rec := newReconciler(repo, cal)

	ok, err := rec.RetryBooking(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, cal.inserts, "synced booking must not touch the calendar")

	stored, _ := repo.GetByID(context.Background(), "b-1")
	assert.Equal(t, "event-999", stored.CalendarEventID)
}

func TestRetryBooking_RetryFailedIsNotTerminal(t *testing.T) {
	b := failedBooking("b-1")
	b.SyncStatus = models.SyncStatusRetryFailed
	repo := newFakeRepo(b)
	cal := &flakyCalendar{}
	rec := newReconciler(repo, cal)

	ok, err := rec.RetryBooking(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := repo.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.SyncStatusSynced, stored.SyncStatus)
}

func TestRetryBooking_UnknownBooking(t *testing.T) {
	rec := newReconciler(newFakeRepo(), &flakyCalendar{})
	_, err := rec.RetryBooking(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestRetryBooking_UnknownBay(t *testing.T) {
	b := failedBooking("b-1")
	b.BayID = "bay-9"
	rec := newReconciler(newFakeRepo(b), &flakyCalendar{})
	ok, err := rec.RetryBooking(context.Background(), "b-1")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestBatchRetry_CountsSuccessesAndFailures(t *testing.T) {
	good1 := failedBooking("b-1")
	good2 := failedBooking("b-2")
	orphan := failedBooking("b-3")
	orphan.BayID = "bay-9" // unknown bay counts as failed, never aborts the sweep
	repo := newFakeRepo(good1, good2, orphan)
	rec := newReconciler(repo, &flakyCalendar{})

	result, err := rec.BatchRetry(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
}

func TestBatchRetry_EmptySweep(t *testing.T) {
	rec := newReconciler(newFakeRepo(), &flakyCalendar{})
	result, err := rec.BatchRetry(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
}

func TestBatchRetry_StoreFailureAborts(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = errors.New("connection reset")
	rec := newReconciler(repo, &flakyCalendar{})
	_, err := rec.BatchRetry(context.Background(), 10)
	assert.Error(t, err)
}

func TestBatchRetry_RespectsLimit(t *testing.T) {
	repo := newFakeRepo(failedBooking("b-1"), failedBooking("b-2"), failedBooking("b-3"))
	rec := newReconciler(repo, &flakyCalendar{})

	result, err := rec.BatchRetry(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount+result.FailedCount)
}
