package handlers

import (
	"errors"
	"net/http"

	"fairway/config"
	sync "fairway/services/sync"
	"fairway/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SyncHandler exposes the reconciliation triggers used by the admin panel.
type SyncHandler struct {
	Reconciler *sync.Reconciler
}

func NewSyncHandler(rec *sync.Reconciler) *SyncHandler {
	return &SyncHandler{Reconciler: rec}
}

// RetryBooking answers POST /api/admin/sync/bookings/:bookingId/retry.
func (h *SyncHandler) RetryBooking(c *gin.Context) {
	id := c.Param("bookingId")
	ok, err := h.Reconciler.RetryBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retry booking sync", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// BatchRetry answers POST /api/admin/sync/retry-batch.
func (h *SyncHandler) BatchRetry(c *gin.Context) {
	var input struct {
		Limit int64 `json:"limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Limit <= 0 {
		input.Limit = int64(config.AppConfig.SyncSweepBatchLimit)
	}

	result, err := h.Reconciler.BatchRetry(c.Request.Context(), input.Limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "reconciliation sweep failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
