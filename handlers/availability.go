package handlers

import (
	"errors"
	"net/http"
	"time"

	"fairway/models"
	"fairway/services/availability"
	"fairway/services/calendar"
	"fairway/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the day-availability endpoint.
type AvailabilityHandler struct {
	Svc      availability.Service
	Location *time.Location
}

func NewAvailabilityHandler(svc availability.Service, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc, Location: loc}
}

// GetDaySlots answers GET /api/availability/slots?date=YYYY-MM-DD.
// currentTime overrides the reference instant (mainly for the portal's own
// clock); it defaults to the server's now in the business timezone.
func (h *AvailabilityHandler) GetDaySlots(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.ParseInLocation("2006-01-02", date, h.Location); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be YYYY-MM-DD")
		return
	}

	now := time.Now().In(h.Location)
	if raw := c.Query("currentTime"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid currentTime", "currentTime must be RFC3339")
			return
		}
		now = parsed
	}

	slots, err := h.Svc.GetDaySlots(c.Request.Context(), date, now)
	if err != nil {
		var upstream *calendar.UpstreamError
		if errors.As(err, &upstream) {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"availability temporarily unavailable", "calendar provider did not respond; please retry")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}

	if slots == nil {
		slots = []models.SlotOffer{} // never serialize null for an empty day
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
