package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/scms/internal/config"
	"github.com/SAP-F-2025/scms/internal/events"
	"github.com/SAP-F-2025/scms/internal/handlers"
	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
	"github.com/SAP-F-2025/scms/internal/repositories/memory"
	"github.com/SAP-F-2025/scms/internal/repositories/postgres"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
	"github.com/SAP-F-2025/scms/internal/validator"
	"github.com/SAP-F-2025/scms/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := utils.NewLevelLogger(cfg.LogLevel, os.Stdout)
	logger := utils.NewSlogLogger(slogLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	repoManager, err := newRepositoryManager(cfg, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	repo := repoManager.GetRepository()

	if cfg.StoreSeedFile != "" && cfg.StoreDriver == config.StoreDriverPostgres {
		snapshot, err := repositories.LoadSnapshotFile(cfg.StoreSeedFile)
		if err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
		if _, err := repositories.Seed(ctx, repo, snapshot, slogLogger); err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
	}

	// Initialize change events
	publisher, err := newPublisher(ctx, cfg, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize events: %v", err)
	}

	// Initialize services
	serviceManager := services.NewServiceManager(repo, slogLogger, validator.New(), services.ServiceManagerConfig{
		Publisher: publisher,
	})
	if err := serviceManager.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(serviceManager, logger, cfg.Casdoor)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting relation store", "port", cfg.Port, "environment", cfg.Environment, "driver", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Closes the publisher
	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}
	cancel()

	// Closes postgres and redis
	if err := repoManager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to close repositories: %v", err)
	}

	logger.Info("Server exited")
}

// newRepositoryManager picks the store backend. The memory store loads the seed file itself.
func newRepositoryManager(cfg *config.Config, logger *slog.Logger) (repositories.RepositoryManager, error) {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		var snapshot *models.Snapshot
		if cfg.StoreSeedFile != "" {
			loaded, err := repositories.LoadSnapshotFile(cfg.StoreSeedFile)
			if err != nil {
				return nil, err
			}
			snapshot = &loaded
		}
		return memory.NewRepositoryManager(snapshot), nil
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}

	// Redis only fronts reads; the store works without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, serving without cache", "error", err)
			redisClient = nil
		}
	}

	return postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		AutoMigrate: cfg.AutoMigrate,
	}), nil
}

// newPublisher sends change events to Kafka when brokers are configured, otherwise logs them in-process
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	}

	publisher, channel := events.NewGoChannelPublisher(cfg.Kafka.Topic, logger)
	if err := events.LogEvents(ctx, channel, cfg.Kafka.Topic, logger); err != nil {
		return nil, err
	}
	return publisher, nil
}
