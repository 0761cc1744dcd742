package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/adapters/cache"
	"github.com/SafeHaul-Logistics/service-routing/internal/adapters/classify"
	"github.com/SafeHaul-Logistics/service-routing/internal/adapters/directions"
	"github.com/SafeHaul-Logistics/service-routing/internal/application"
	"github.com/SafeHaul-Logistics/service-routing/internal/config"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"github.com/SafeHaul-Logistics/service-routing/internal/events"
	"github.com/SafeHaul-Logistics/service-routing/internal/handler"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/database"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/health"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/logger"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/middleware"
	"github.com/SafeHaul-Logistics/service-routing/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-routing")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-routing",
		zap.String("port", cfg.Port),
	)

	// Connect to the zone database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.ZoneModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize the evaluation result cache
	resultCache := cache.NewResultCache(cfg.RedisAddr, cfg.ResultTTL)
	defer func() { _ = resultCache.Close() }()

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize the directions provider
	provider, err := directions.NewGoogleProvider(cfg.GoogleMapsAPIKey, log)
	if err != nil {
		log.Fatal("failed to create directions provider", zap.Error(err))
	}

	// Initialize zone lookups
	schoolZones := repository.NewGormZoneLookup(db, zone.KindSchool)
	hazmatZones := repository.NewGormZoneLookup(db, zone.KindHazmat)

	// Initialize the evaluation service
	evaluationService := application.NewEvaluationService(
		provider,
		schoolZones,
		hazmatZones,
		classify.NewHeuristicClassifier(),
		resultCache,
		producer,
		cfg.RequestTimeout,
		log,
	)

	// Initialize HTTP handlers
	routeHandler := handler.NewRouteHandler(evaluationService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Register health check routes
	healthHandler := health.NewHandler(db, resultCache, "service-routing")
	healthHandler.RegisterRoutes(router)

	// Register routes
	routeHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-routing...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-routing stopped")
}
