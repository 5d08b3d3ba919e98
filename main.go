// File: localpro/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localpro/config"
	"localpro/cron"
	"localpro/database"
	bookingRepo "localpro/database/repository/booking"
	providerRepo "localpro/database/repository/provider"
	scheduleRepo "localpro/database/repository/schedule"
	"localpro/handlers"
	"localpro/middleware"
	"localpro/routes"
	"localpro/services/availability"
	"localpro/services/booking"
	"localpro/services/tasks"
	"localpro/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	if err := provRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
	}
	if err := bookRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	engine := &availability.DefaultAvailabilityEngine{
		Schedules: schedRepo,
		Bookings:  bookRepo,
		Opts: availability.Options{
			OpenWhenUnconfigured:  config.AppConfig.OpenWhenUnconfigured,
			StartOnlySlotCheck:    config.AppConfig.StartOnlySlotCheck,
			DefaultBookingMinutes: config.AppConfig.DefaultBookingMinutes,
		},
	}

	reminderScheduler := tasks.NewScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})

	bookingService := &booking.DefaultBookingService{
		Engine:    engine,
		Bookings:  bookRepo,
		Providers: provRepo,
		Payments:  booking.NewPaymentHandler(logger),
		Reminders: reminderScheduler,
		Logger:    logger,
	}

	// Reminder delivery worker; its background goroutines stop when the
	// server shuts down.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	cron.InitReminderWorker(workerCtx)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Provider:     handlers.NewProviderHandler(provRepo),
		Schedule:     handlers.NewScheduleHandler(schedRepo),
		Availability: handlers.NewAvailabilityHandler(engine),
		Booking:      handlers.NewBookingHandler(bookingService, utils.GetSessionCacheClient(), logger),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
