package routes

import (
	"net/http"
	"time"

	"fairway/handlers"
	"fairway/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the portal's handlers for route registration.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Sync         *handlers.SyncHandler
}

// RegisterAvailabilityRoutes sets up the slot-availability endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/slots", hb.Availability.GetDaySlots)
	}
}

// RegisterBookingRoutes sets up the booking-finalization endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/:bookingId", hb.Booking.GetBooking)
	}
}

// RegisterSyncRoutes sets up the reconciliation triggers for the admin panel.
func RegisterSyncRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin/sync")
	{
		api.POST("/bookings/:bookingId/retry", hb.Sync.RetryBooking)
		api.POST("/retry-batch", hb.Sync.BatchRetry)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSyncRoutes(r, hb)
	RegisterHealthRoute(r)
}
