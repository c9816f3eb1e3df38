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

	"lifeline/internal/config"
	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
	"lifeline/internal/repositories/mongodb"
	"lifeline/internal/services"
	"lifeline/pkg/cache"
	"lifeline/pkg/database"
	"lifeline/pkg/logger"
	"lifeline/pkg/maps"
	"lifeline/pkg/storage"
	"lifeline/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	// Geospatial and state-machine indexes must exist before serving.
	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger)

	// Storage
	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Geocoding is optional; matching never depends on it.
	var geocoder maps.Geocoder
	if cfg.Maps.GeocodingEnabled {
		geocoder, err = maps.NewGoogleMapsGeocoder(cfg.Maps.GoogleAPIKey)
		if err != nil {
			appLogger.WithError(err).Warn("Geocoding disabled: client initialization failed")
			geocoder = nil
		}
	}

	// Repositories
	requestRepo := mongodb.NewEmergencyRequestRepository(db.Database, cacheService)
	hospitalRepo := mongodb.NewHospitalRepository(db.Database, cacheService)
	patientRepo := mongodb.NewPatientRepository(db.Database, cacheService)

	// Services
	matchingService := services.NewMatchingService(hospitalRepo, cfg.Matching.SearchRadiusKM)
	emergencyService := services.NewEmergencyService(
		requestRepo, hospitalRepo, patientRepo,
		matchingService, storageProvider, geocoder, appLogger,
	)
	hospitalService := services.NewHospitalService(hospitalRepo, appLogger)
	patientService := services.NewPatientService(patientRepo, appLogger)

	// Handlers
	emergencyHandler := handlers.NewEmergencyHandler(emergencyService)
	hospitalHandler := handlers.NewHospitalHandler(emergencyService, hospitalService)
	patientHandler := handlers.NewPatientHandler(patientService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupEmergencyRoutes(v1, cfg.Security.JWTSecret, emergencyHandler, hospitalHandler)
		routes.SetupProfileRoutes(v1, cfg.Security.JWTSecret, hospitalHandler, patientHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.Provider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.S3Region, cfg.S3Bucket, cfg.CDNDomain)
	case "gcs":
		return storage.NewGCPStorage(context.Background(), cfg.GCSBucket)
	default:
		return storage.NewLocalStorage(cfg.LocalDir, cfg.LocalURL)
	}
}
