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

	"github.com/jmaddox/groundops/internal/api"
	"github.com/jmaddox/groundops/internal/api/middleware"
	"github.com/jmaddox/groundops/internal/auth"
	"github.com/jmaddox/groundops/internal/config"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/maps"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/service"
	"github.com/jmaddox/groundops/internal/storage"
	"github.com/jmaddox/groundops/internal/watch"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := logger.LoadFromEnv()
	appLogger := logger.NewFromEnv(logCfg)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database; InitDB migrates when auto_migrate is set
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}

	// Live-query hub; every repository write funnels a change signal
	// through it and every dashboard watch subscribes to it.
	hub := watch.NewHub()
	defer hub.Close()

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db, hub)
	customerRepo := repository.NewCustomerRepository(db, hub)
	leadRepo := repository.NewLeadRepository(db, hub)
	contractRepo := repository.NewContractRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize object storage for quote photos (optional)
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Bucket != "" {
		objectStorage, err = storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLogger.Fatalf("Failed to initialize storage: %v", err)
		}
		if s3, ok := objectStorage.(*storage.S3Storage); ok {
			if err := s3.EnsureBucket(context.Background()); err != nil {
				appLogger.Fatalf("Failed to ensure storage bucket: %v", err)
			}
		}
	} else {
		appLogger.Warn("Object storage not configured; quote photo uploads are disabled")
	}

	// Initialize maps client
	mapsClient := maps.NewClient(&maps.Config{
		APIKey:         cfg.Maps.APIKey,
		BaseURL:        cfg.Maps.BaseURL,
		GeolocationURL: cfg.Maps.GeolocationURL,
		Timeout:        cfg.Maps.RequestTimeout,
	})

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	recurrence := service.NewRecurrenceExpander(jobRepo)
	scheduleService := service.NewScheduleService(jobRepo, customerService, recurrence, hub)
	leadService := service.NewLeadService(leadRepo)
	contractService := service.NewContractService(contractRepo, propertyRepo)
	routingService := service.NewRoutingService(mapsClient, cfg.Routing.WaypointCeiling, cfg.Maps.GeolocationTimeout)
	routeService := service.NewRouteService(routeRepo)
	intakeService := service.NewIntakeService(intakeRepo, leadService, objectStorage)

	jwtService := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Setup router
	router := api.SetupRouter(&api.Services{
		Schedule:  scheduleService,
		Customers: customerService,
		Leads:     leadService,
		Contracts: contractService,
		Routing:   routingService,
		Routes:    routeService,
		Intake:    intakeService,
		Users:     userRepo,
		JWT:       jwtService,
	}, appLogger, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.Infof("Starting API server on port %d (mode=%s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop live-query feeds before draining HTTP connections so SSE
	// streams terminate instead of holding the shutdown open.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited")
}
