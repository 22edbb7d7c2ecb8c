package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studiobook/config"
	"studiobook/cron"
	"studiobook/database"
	bookingRepo "studiobook/database/repository/booking"
	calendarRepo "studiobook/database/repository/calendar"
	crmRepo "studiobook/database/repository/crm"
	"studiobook/middleware"
	"studiobook/routes"
	"studiobook/services/booking"
	"studiobook/services/calendar"
	"studiobook/services/crm"
	"studiobook/services/mailer"
	"studiobook/services/notify"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitTaskQueueCache()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}
	cancel()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	calendarDays := calendarRepo.NewMongoCalendarRepo()
	pipeline := crmRepo.NewMongoCRMRepo()

	// services.
	orgID := config.AppConfig.OrgID
	crmService := &crm.DefaultSyncService{Repo: pipeline}
	mailService := mailer.NewResendMailer()
	dispatcher := notify.NewAsynqDispatcher()
	defer dispatcher.Close()

	intakeService := &booking.DefaultIntakeService{
		Bookings: bookings,
		Calendar: calendarDays,
		CRM:      crmService,
		Notifier: dispatcher,
		OrgID:    orgID,
	}
	approvalService := &booking.DefaultApprovalService{
		Bookings: bookings,
		Calendar: calendarDays,
		Notifier: dispatcher,
		OrgID:    orgID,
	}
	calendarService := &calendar.DefaultCalendarService{
		Bookings: bookings,
		Calendar: calendarDays,
		OrgID:    orgID,
	}

	// Background worker draining the side-effect queue.
	cron.InitWorker(mailService, crmService)
	utils.StartHealthMonitor(utils.GetTaskQueueClient(), database.MongoClient)

	handlerBundle := &routes.HandlerBundle{
		Intake:   intakeService,
		Approval: approvalService,
		Calendar: calendarService,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
