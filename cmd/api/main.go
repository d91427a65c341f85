package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/adapters/cache"
	"github.com/ratewatch/medicaid-rates-backend/internal/adapters/database"
	"github.com/ratewatch/medicaid-rates-backend/internal/adapters/providers/billing"
	"github.com/ratewatch/medicaid-rates-backend/internal/adapters/providers/email"
	"github.com/ratewatch/medicaid-rates-backend/internal/api/handlers"
	"github.com/ratewatch/medicaid-rates-backend/internal/api/middleware"
	"github.com/ratewatch/medicaid-rates-backend/internal/api/routes"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/redis"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/stripe"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/observability"
	"github.com/ratewatch/medicaid-rates-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Continue without Redis - the application can work without caching
		log.Warn().Err(err).Msg("Failed to initialize Redis client, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize adapters
	rateAdapter := database.NewRateAdapter(pgClient)
	alertAdapter := database.NewAlertAdapter(pgClient)
	billAdapter := database.NewBillAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	commentAdapter := database.NewCommentAdapter(pgClient)
	preferenceAdapter := database.NewPreferenceAdapter(pgClient)

	// Billing provider: Stripe when a key is configured, mock otherwise
	var billingProvider providers.BillingProvider
	if cfg.Stripe.SecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set; using mock billing provider")
		billingProvider = billing.NewMockBillingProvider()
	} else {
		stripeClient, err := stripe.NewClient(&cfg.Stripe)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Stripe client")
		}
		billingProvider = billing.NewStripeAdapter(stripeClient, cacheProvider, cfg.Stripe.CacheTTLSeconds)
	}

	// Email provider: hosted API when a key is configured, mock otherwise
	var emailProvider providers.EmailProvider
	if cfg.Email.APIKey == "" {
		log.Warn().Msg("EMAIL_API_KEY is not set; using mock email sender")
		emailProvider = email.NewMockSender()
	} else {
		emailProvider, err = email.NewResendSender(&cfg.Email)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize email sender")
		}
	}

	// Initialize services
	rateService := services.NewRateService(rateAdapter, commentAdapter)
	alertService := services.NewAlertService(alertAdapter)
	billService := services.NewBillService(billAdapter)
	categoryService := services.NewCategoryService(categoryAdapter)
	preferenceService := services.NewPreferenceService(preferenceAdapter)
	subscriptionService := services.NewSubscriptionService(billingProvider)
	contactService := services.NewContactService(emailProvider, cfg.Email.ContactTo, cacheProvider)

	// Initialize handlers
	ratesHandler := handlers.NewRatesHandler(rateService)
	mutationsHandler := handlers.NewMutationsHandler(rateService, alertService, billService)
	alertsHandler := handlers.NewAlertsHandler(alertService)
	billsHandler := handlers.NewBillsHandler(billService)
	categoriesHandler := handlers.NewCategoriesHandler(categoryService)
	preferencesHandler := handlers.NewPreferencesHandler(preferenceService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		ratesHandler,
		mutationsHandler,
		alertsHandler,
		billsHandler,
		categoriesHandler,
		preferencesHandler,
		subscriptionHandler,
		contactHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
