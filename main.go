package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mindhaven/config"
	"mindhaven/database"
	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/routes"
	"mindhaven/services/booking"
	"mindhaven/services/directory"
	"mindhaven/services/notification"
	"mindhaven/services/payment"
	"mindhaven/services/session"
	"mindhaven/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	catalog, err := database.LoadCatalog(config.AppConfig.CatalogPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load therapist catalog: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	directoryService := directory.NewDirectory(catalog, logger)
	paymentService := payment.NewPaymentHandler(logger,
		time.Duration(config.AppConfig.SettlementDelayMs)*time.Millisecond)
	sessionManager := session.NewManager(session.Config{
		ConnectDelay: time.Duration(config.AppConfig.ConnectDelayMs) * time.Millisecond,
		TickInterval: time.Duration(config.AppConfig.TickIntervalMs) * time.Millisecond,
	}, logger)

	// One confirmation strategy per deployment: an external meeting URL with
	// a mail side effect, or a plain in-app session route.
	var publisher booking.ConfirmationPublisher
	var notifier notification.Notifier
	if config.AppConfig.ConfirmationMode == "external" {
		publisher = booking.ExternalMeetingPublisher{BaseURL: config.AppConfig.MeetingBaseURL}
		notifier = notification.NewEmailNotifier(notification.SMTPConfig{
			Host: config.AppConfig.SMTPHost,
			Port: config.AppConfig.SMTPPort,
			User: config.AppConfig.SMTPUser,
			Pass: config.AppConfig.SMTPPass,
		}, logger)
	} else {
		publisher = booking.InternalRoutePublisher{}
		notifier = notification.NoopNotifier{}
	}

	bookingHandler := handlers.NewBookingHandler(
		directoryService, paymentService, sessionManager, notifier, publisher, logger)
	sessionHandler := handlers.NewSessionHandler(sessionManager, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, sessionHandler)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
