package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasdrives/internal/config"
	"tasdrives/internal/coupon"
	"tasdrives/internal/database"
	"tasdrives/internal/email"
	"tasdrives/internal/handler"
	"tasdrives/internal/middleware"
	"tasdrives/internal/payment"
	"tasdrives/internal/pricing"
	"tasdrives/internal/repository"
	"tasdrives/internal/router"
	"tasdrives/internal/service"
	"tasdrives/internal/shipping"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tasdrives API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	vehicleRepo := repository.NewVehicleRepository(pool, logger)
	leadRepo := repository.NewLeadRepository(pool, logger)

	// Session state: Redis when configured, process memory otherwise
	var backend storage.Backend
	if cfg.Redis.Enabled {
		backend, err = storage.NewRedisBackend(ctx, storage.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			PoolSize:  cfg.Redis.PoolSize,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.TTL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize session storage: %w", err)
		}
	} else {
		logger.Warn().Msg("redis disabled, session state is kept in memory")
		backend = storage.NewMemoryBackend()
	}
	defer backend.Close()

	validator, err := coupon.NewValidator(ctx, &coupon.ValidatorConfig{
		FilePaths:       cfg.Coupons.FilePaths,
		IncludeDefaults: cfg.Coupons.IncludeDefaults,
	}, newCouponLoader(ctx, cfg.S3, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize coupon validator: %w", err)
	}
	defer validator.Close()

	formatter, err := pricing.NewFormatter(cfg.Pricing.Locale, cfg.Pricing.Currency, cfg.Pricing.Symbol)
	if err != nil {
		return fmt.Errorf("failed to initialize price formatter: %w", err)
	}

	var processor payment.Processor
	if cfg.Stripe.SecretKey != "" {
		processor = payment.NewStripeProcessor(payment.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
		}, logger)
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, using in-memory payment processor")
		processor = payment.NewMemoryProcessor(logger)
	}

	sender, err := email.New(email.Config{
		Provider:     cfg.Email.Provider,
		From:         cfg.Email.From,
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		ResendAPIKey: cfg.Email.ResendAPIKey,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	catalogService := service.NewCatalogService(vehicleRepo, logger)
	checkoutService := service.NewCheckoutService(processor, sender, formatter, service.CheckoutConfig{
		Currency:    cfg.Stripe.Currency,
		DemoScaling: cfg.Stripe.DemoScaling,
	}, logger)
	orderService := service.NewOrderService(processor, logger)
	adminService := service.NewAdminService(vehicleRepo, processor, logger)
	contactService := service.NewContactService(leadRepo, sender, cfg.Email.ContactInbox, logger)

	stores := handler.NewSessionStores(backend, validator, logger)

	mux := router.New(router.Handlers{
		Vehicle:      handler.NewVehicleHandler(catalogService, logger),
		Cart:         handler.NewCartHandler(stores, formatter, logger),
		Notification: handler.NewNotificationHandler(stores, logger),
		Checkout:     handler.NewCheckoutHandler(checkoutService, stores, logger),
		Order:        handler.NewOrderHandler(orderService, logger),
		Shipping:     handler.NewShippingHandler(shipping.NewTracker(), logger),
		Contact:      handler.NewContactHandler(contactService, logger),
		Admin:        handler.NewAdminHandler(adminService, logger),
		Health: func(ctx context.Context) error {
			return database.Ping(ctx, pool)
		},
	}, router.Auth{
		APIKey:        cfg.Auth.APIKey,
		SessionStore:  middleware.NewSessionStore(cfg.Auth.SessionSecret, cfg.Auth.SecureCookies),
		SessionHeader: cfg.Auth.SessionHeader,
		JWTSecret:     cfg.Auth.JWTSecret,
		AdminEmails:   cfg.Auth.AdminEmails,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newCouponLoader reads coupon tables from S3 when enabled and falls back to
// the local file system.
func newCouponLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) coupon.Loader {
	fileLoader := coupon.NewFileLoader(logger)
	if !cfg.Enabled {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := coupon.NewS3Loader(ctx, cfg.Bucket, cfg.Region, cfg.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return coupon.NewChainLoader(logger, s3Loader, fileLoader)
}
