package handlers

import (
	"errors"
	"net/http"
	"time"

	"fairway/services/booking"
	"fairway/services/calendar"
	"fairway/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingHandler serves booking finalization and read-back.
type BookingHandler struct {
	Svc booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CreateBooking answers POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		UserID       string `json:"userId" binding:"required"`
		CustomerName string `json:"customerName" binding:"required"`
		StartTime    string `json:"startTime" binding:"required"`
		EndTime      string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid startTime", "startTime must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, input.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid endTime", "endTime must be RFC3339")
		return
	}

	created, err := h.Svc.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:       input.UserID,
		CustomerName: input.CustomerName,
		Start:        start,
		End:          end,
	})
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			utils.JSONError(c, http.StatusConflict,
				"slot no longer available", "the requested time was booked by someone else; please pick another slot")
			return
		}
		var validation *booking.ValidationError
		if errors.As(err, &validation) {
			utils.JSONError(c, http.StatusBadRequest, "invalid booking request", validation.Message)
			return
		}
		var upstream *calendar.UpstreamError
		if errors.As(err, &upstream) {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"booking temporarily unavailable", "calendar provider did not respond; please retry")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// GetBooking answers GET /api/bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("bookingId")
	found, err := h.Svc.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": found})
}
