package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-service/config"
	"booking-service/controllers"
	"booking-service/database"
	apperrors "booking-service/errors"
	"booking-service/kafka"
	"booking-service/logger"
	"booking-service/middleware"
	"booking-service/models"
	aws_pkg "booking-service/pkg/aws"
	"booking-service/repository"
	"booking-service/routes"
	"booking-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		logger.Initialize("development").Fatal("Failed to load configuration", zap.Error(err))
	}

	awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
	if err != nil {
		logger.Initialize(cfg.Env).Fatal("Failed to load AWS config", zap.Error(err))
	}

	// --- 1. Logging & metrics ---

	log := logger.Initialize(cfg.Env)
	if cfg.CloudWatchEnabled {
		cwWriter, err := aws_pkg.NewCloudWatchLogsClient(context.Background(), awsCfg, cfg.CloudWatchLogGroup, cfg.ServiceName)
		if err != nil {
			log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		} else {
			log = logger.InitializeWithWriter(cfg.Env, cwWriter)
		}
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	metricsClient := aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)

	if cfg.VerificationFailureStatus == http.StatusInternalServerError {
		log.Warn("Webhook verification failures answer 500, so Stripe will retry forged or stale deliveries; set WEBHOOK_VERIFICATION_FAILURE_STATUS=400 once clients allow it")
	}

	// --- 2. Storage ---

	db, err := database.ConnectPostgres(cfg.PostgresDSN(), log, &models.Booking{}, &models.HotelRoom{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer database.Close(db)

	bookingRepo := repository.NewGormBookingRepo(db)
	roomRepo := repository.NewGormRoomRepo(db)

	var dedup repository.EventDeduplicator
	if cfg.DedupEnabled {
		redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal("Webhook dedup enabled but Redis is unreachable", zap.Error(err))
		}
		defer redisClient.Close()
		dedup = repository.NewRedisEventDeduplicator(redisClient, cfg.DedupTTL)
		log.Info("Webhook replay protection enabled", zap.Duration("ttl", cfg.DedupTTL))
	}

	// --- 3. Booking events ---

	var publisher services.BookingEventPublisher
	switch cfg.EventsBackend {
	case config.EventsBackendSNS:
		publisher = services.NewSNSBookingPublisher(aws_pkg.NewSNSClient(awsCfg), cfg.BookingSNSTopicARN)
	case config.EventsBackendKafka:
		producer := kafka.NewBookingEventProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic, log)
		defer producer.Close()
		publisher = producer
	}

	// --- 4. Services & controllers ---

	stripeSvc := services.NewStripeService(
		services.NewStripeAPI(cfg.StripeSecretKey),
		cfg.StripeWebhookSecret,
		cfg.CheckoutCurrency,
		services.WebhookOptions{
			Tolerance:                cfg.StripeWebhookTolerance,
			IgnoreAPIVersionMismatch: cfg.StripeIgnoreAPIVersion,
		},
	)
	bookingSvc := services.NewBookingService(bookingRepo, roomRepo, publisher, metricsClient, log)
	checkoutSvc := services.NewCheckoutService(roomRepo, stripeSvc, metricsClient, log, cfg.CheckoutSuccessURL(), cfg.CheckoutCancelURL())

	handlers := routes.Handlers{
		Webhook: &controllers.WebhookController{
			Verifier:                  stripeSvc,
			Bookings:                  bookingSvc,
			Dedup:                     dedup,
			Metrics:                   metricsClient,
			Logger:                    log,
			VerificationFailureStatus: cfg.VerificationFailureStatus,
		},
		Checkout:          &controllers.CheckoutController{Checkout: checkoutSvc},
		Bookings:          &controllers.BookingController{Bookings: bookingSvc},
		CheckoutPerMinute: cfg.CheckoutRateLimitPerMinute,
	}

	// --- 5. HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware(metricsClient, cfg.ServiceName))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Booking Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Booking Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Booking Service stopped gracefully")
}
