package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edupath/cache"
	"edupath/config"
	"edupath/cron"
	"edupath/handlers"
	"edupath/middleware"
	"edupath/routes"
	bookingsvc "edupath/services/booking"
	"edupath/services/checkout"
	"edupath/services/enquiry"
	"edupath/services/notification"
	"edupath/services/wizard"
	"edupath/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	availability := wizard.NewAvailability()
	validator := wizard.NewValidator(availability)

	sessionService := &wizard.DefaultSessionService{
		Cache:     utils.GetSessionCacheClient(),
		Validator: validator,
		TTL:       time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		Logger:    logger,
	}

	noticeService := &notification.DefaultService{
		Sessions: sessionService,
		Logger:   logger,
	}

	queryCache := cache.NewRedisQueryCache(utils.GetQueryCacheClient(), logger)

	enquiryClient := enquiry.NewClient(
		config.AppConfig.EnquiryAPIBaseURL,
		config.AppConfig.EnquiryAPIToken,
		logger,
	)

	gateway := checkout.NewStripeGateway(
		"https://edupath.example/booking/success",
		"https://edupath.example/booking/cancelled",
		logger,
	)

	submitter := &bookingsvc.Submitter{
		API:         enquiryClient,
		Gateway:     gateway,
		Validator:   validator,
		Key:         config.AppConfig.CheckoutKey,
		Currency:    config.AppConfig.CheckoutCurrency,
		DisplayName: config.AppConfig.InstitutionName,
		Logger:      logger,
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	completionHandler := &checkout.CompletionHandler{
		Sessions: sessionService,
		Notices:  noticeService,
		Cache:    queryCache,
		Tasks:    taskClient,
		Currency: config.AppConfig.CheckoutCurrency,
		Logger:   logger,
	}

	// Background worker for best-effort confirmation emails.
	cron.InitConfirmationWorker(enquiryClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Wizard:  handlers.NewWizardHandler(sessionService, availability, noticeService, logger),
		OTP:     handlers.NewOTPHandler(sessionService, enquiryClient, noticeService, logger),
		Booking: handlers.NewBookingHandler(sessionService, submitter, completionHandler, noticeService, logger),
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
