package routes

import (
	"net/http"
	"time"

	"localpro/handlers"
	"localpro/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the wired handlers for route registration.
type HandlerBundle struct {
	Provider     *handlers.ProviderHandler
	Schedule     *handlers.ScheduleHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Storage      *handlers.StorageHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	providers := r.Group("/api/providers")
	{
		providers.GET("/nearby", hb.Provider.SearchNearbyHandler)
		providers.GET("/:id", hb.Provider.GetProviderByIDHandler)
		providers.GET("/:id/schedule", hb.Schedule.GetScheduleHandler)
		providers.GET("/:id/availability", hb.Availability.CheckAvailabilityHandler)
		providers.GET("/:id/slots", hb.Availability.NextSlotsHandler)

		// Edits require the caller to be the provider.
		protected := providers.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware())
		protected.PUT("/:id", hb.Provider.UpsertProviderHandler)
		protected.PUT("/:id/schedule", hb.Schedule.SaveScheduleHandler)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.FirebaseAuthMiddleware())
	{
		bookings.POST("", hb.Booking.CreateBookingHandler)
		bookings.POST("/:id/cancel", hb.Booking.CancelBookingHandler)
	}

	storage := r.Group("/api/storage")
	storage.Use(middleware.FirebaseAuthMiddleware())
	{
		storage.POST("/upload", hb.Storage.UploadFileHandler)
		storage.GET("/url", hb.Storage.GetDownloadURLHandler)
	}
}
