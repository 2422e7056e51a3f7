// File: fairway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fairway/config"
	"fairway/cron"
	"fairway/database"
	bookingRepo "fairway/database/repository/booking"
	"fairway/handlers"
	"fairway/middleware"
	"fairway/models"
	"fairway/routes"
	"fairway/services/availability"
	"fairway/services/booking"
	"fairway/services/calendar"
	syncsvc "fairway/services/sync"
	"fairway/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	loc := config.BusinessLocation()

	// Bay registry, built once from configuration; order is assignment priority.
	bays := make([]models.Bay, 0, len(config.AppConfig.Bays))
	for _, b := range config.AppConfig.Bays {
		bays = append(bays, models.Bay{
			ID:          b.ID,
			DisplayName: b.DisplayName,
			CalendarID:  b.CalendarID,
		})
	}
	registry := models.NewBayRegistry(bays)

	calendarSvc, err := calendar.NewGoogleCalendarService(
		context.Background(),
		config.AppConfig.GoogleCredentialsFile,
		time.Duration(config.AppConfig.CalendarTimeoutSec)*time.Second,
		loc,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepository := bookingRepo.NewMongoBookingRepo()

	// services.
	fetcher := &availability.Fetcher{
		Calendar: calendarSvc,
		Registry: registry,
		Location: loc,
		Logger:   logger,
	}
	availabilitySvc := &availability.DefaultService{
		Fetcher: fetcher,
		Params: availability.Params{
			OpeningHour:      config.AppConfig.OpeningHour,
			ClosingHour:      config.AppConfig.ClosingHour,
			MaxSlotHours:     config.AppConfig.MaxSlotHours,
			MinUsableMinutes: config.AppConfig.MinUsableMinutes,
			StepMinutes:      config.AppConfig.SlotStepMinutes,
			Location:         loc,
		},
		Cache:    &availability.RedisSlotCache{Client: utils.GetCacheClient(), Logger: logger},
		CacheTTL: time.Duration(config.AppConfig.SlotCacheTTLSec) * time.Second,
		Logger:   logger,
	}

	reconciler := &syncsvc.Reconciler{
		Repo:     bookingRepository,
		Calendar: calendarSvc,
		Registry: registry,
		Policy: syncsvc.RetryPolicy{
			MaxAttempts:       config.AppConfig.SyncMaxRetries,
			BaseDelay:         time.Duration(config.AppConfig.SyncBaseDelayMs) * time.Millisecond,
			BackoffMultiplier: 2,
		},
		Concurrency:   config.AppConfig.SyncConcurrency,
		BatchCooldown: time.Duration(config.AppConfig.SyncBatchCooldownMs) * time.Millisecond,
		Logger:        logger,
	}

	bookingSvc := &booking.DefaultService{
		Repo:     bookingRepository,
		Fetcher:  fetcher,
		Calendar: calendarSvc,
		Registry: registry,
		Location: loc,
		Queue:    cron.NewEnqueuer(),
		Logger:   logger,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilitySvc, loc),
		Booking:      handlers.NewBookingHandler(bookingSvc),
		Sync:         handlers.NewSyncHandler(reconciler),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background sync worker and periodic sweep.
	cron.InitSyncWorker(reconciler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("main: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
