// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	bookingRepo "slotify/database/repository/booking"
	calendarRepo "slotify/database/repository/calendar"
	serviceRepo "slotify/database/repository/service"
	"slotify/handlers"
	"slotify/routes"
	"slotify/services/calendar"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	calRepo := calendarRepo.NewMongoCalendarRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := calRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure calendar indexes: %v", err)
	}
	cancel()

	// services.
	calendarService := &calendar.DefaultCalendarService{
		Repo:     calRepo,
		Services: svcRepo,
		Bookings: bkRepo,
		Cache:    utils.GetCacheClient(),
	}
	migrationService := &calendar.DefaultMigrationService{
		Services: svcRepo,
		Calendar: calendarService,
	}

	// background refresh worker and its queue client.
	queueClient := asynq.NewClient(utils.QueueRedisOpt())
	defer queueClient.Close()
	cron.InitRefreshWorker(svcRepo, calendarService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Calendar: &handlers.CalendarHandler{Service: calendarService},
		Booking:  &handlers.BookingHandler{Service: calendarService},
		Admin: &handlers.AdminHandler{
			Migration:   migrationService,
			QueueClient: queueClient,
		},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
