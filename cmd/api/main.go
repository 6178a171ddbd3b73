package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vodomont/backend/internal/adapters/cache"
	"github.com/vodomont/backend/internal/adapters/database"
	"github.com/vodomont/backend/internal/adapters/events"
	"github.com/vodomont/backend/internal/adapters/search"
	"github.com/vodomont/backend/internal/adapters/storage"
	"github.com/vodomont/backend/internal/api/handlers"
	"github.com/vodomont/backend/internal/api/middleware"
	"github.com/vodomont/backend/internal/api/routes"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/internal/domain/repositories"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	"github.com/vodomont/backend/internal/infrastructure/clients/redis"
	s3client "github.com/vodomont/backend/internal/infrastructure/clients/s3"
	"github.com/vodomont/backend/internal/infrastructure/clients/typesense"
	"github.com/vodomont/backend/internal/infrastructure/notifications"
	"github.com/vodomont/backend/internal/infrastructure/observability"
	"github.com/vodomont/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}
	observability.InitLogger(cfg.OTEL.ServiceName, env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the site works without caching or sessions
		// shared across replicas
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize S3 storage client
	s3Client, err := s3client.NewClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage client: %v", err)
	}
	log.Println("Object storage client initialized successfully")

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cross-replica cache invalidation
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	photoAdapter := database.NewPhotoAdapter(pgClient)
	testimonialAdapter := database.NewTestimonialAdapter(pgClient)
	inquiryAdapter := database.NewInquiryAdapter(pgClient)
	settingsAdapter := database.NewSettingsAdapter(pgClient)
	adminUserAdapter := database.NewAdminUserAdapter(pgClient)
	pageViewAdapter := database.NewPageViewAdapter(pgClient)

	objectStorage := storage.NewS3Adapter(s3Client, &cfg.Storage)

	var searchRepo repositories.InquirySearchRepository

	if typesenseClient != nil {

		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists

		if err := adapter.InitSchema(context.Background()); err != nil {

			log.Printf("Warning: Failed to init Typesense schema: %v", err)

		}

		searchRepo = adapter

	}

	// Initialize notification service (owner email alerts)
	var notificationService *services.NotificationService
	if cfg.Mail.APIKey != "" && cfg.Mail.OwnerEmail != "" {
		sender, err := notifications.NewEmailSender(&cfg.Mail)
		if err != nil {
			log.Printf("Warning: Failed to initialize email sender: %v", err)
		} else {
			sqlxDB := sqlx.NewDb(pgClient.DB(), "postgres")
			notificationService, err = services.NewNotificationService(sqlxDB, sender, cfg.Mail.OwnerEmail)
			if err != nil {
				log.Printf("Warning: Failed to initialize notification service: %v", err)
			} else {
				log.Println("Notification service initialized successfully")
			}
		}
	} else {
		log.Println("Owner email notifications disabled (mail not configured)")
	}

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(
			cacheProvider, eventBus, &cfg.CDN, services.DefaultTagPaths())
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Initialize services

	galleryService := services.NewGalleryService(
		photoAdapter, objectStorage, cacheInvalidationService, cfg.Storage.GalleryPrefix)
	testimonialService := services.NewTestimonialService(
		testimonialAdapter, cacheInvalidationService, notificationService)
	contactService := services.NewContactService(inquiryAdapter, searchRepo, notificationService)
	settingsService := services.NewSettingsService(settingsAdapter, cacheInvalidationService)
	authService := services.NewAuthService(adminUserAdapter, cacheProvider)
	reconciliationService := services.NewReconciliationService(
		photoAdapter, objectStorage, cfg.Storage.GalleryPrefix)
	statsService := services.NewStatsService(pageViewAdapter)

	// Create the initial admin account when configured
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if _, err := authService.CreateAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Printf("Admin account bootstrap skipped: %v", err)
		} else {
			log.Printf("Admin account %q created", cfg.Admin.Username)
		}
	}

	// Initialize handlers

	galleryHandler := handlers.NewGalleryHandler(galleryService)

	testimonialHandler := handlers.NewTestimonialHandler(testimonialService, cacheProvider)

	contactHandler := handlers.NewContactHandler(contactService, cacheProvider)

	settingsHandler := handlers.NewSettingsHandler(settingsService)

	authHandler := handlers.NewAuthHandler(authService)

	cacheHandler := handlers.NewCacheHandler(cacheInvalidationService)
	maintenanceHandler := handlers.NewMaintenanceHandler(reconciliationService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		galleryHandler,
		testimonialHandler,
		contactHandler,
		settingsHandler,
		authHandler,
		cacheHandler,
		maintenanceHandler,
		statsHandler,
		authService,
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
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	// Stop cache invalidation service
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
