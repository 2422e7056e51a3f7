package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fairway/models"
	"fairway/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailability struct {
	slots []models.SlotOffer
	err   error
}

func (s *stubAvailability) GetDaySlots(ctx context.Context, date string, now time.Time) ([]models.SlotOffer, error) {
	return s.slots, s.err
}

func newTestRouter(svc *stubAvailability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAvailabilityHandler(svc, time.FixedZone("ICT", 7*3600))
	r.GET("/api/availability/slots", h.GetDaySlots)
	return r
}

func TestGetDaySlots_ReturnsSlots(t *testing.T) {
	svc := &stubAvailability{slots: []models.SlotOffer{
		{StartTime: "10:00", EndTime: "12:00", MaxHours: 2, Period: models.PeriodMorning, AvailableBayCount: 1},
	}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-09-15", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Date  string             `json:"date"`
		Slots []models.SlotOffer `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-09-15", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)
}

func TestGetDaySlots_EmptyDayIsEmptyArrayNotNull(t *testing.T) {
	r := newTestRouter(&stubAvailability{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-09-15", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

func TestGetDaySlots_RejectsBadDate(t *testing.T) {
	r := newTestRouter(&stubAvailability{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=15-09-2026", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDaySlots_RejectsBadCurrentTime(t *testing.T) {
	r := newTestRouter(&stubAvailability{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-09-15&currentTime=notatime", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDaySlots_UpstreamFailureIsRetryable(t *testing.T) {
	svc := &stubAvailability{err: &calendar.UpstreamError{CalendarID: "cal-1", Op: "list", Err: errors.New("timeout")}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/slots?date=2026-09-15", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
