package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/auth"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/config"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/database"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/events"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/metrics"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/repository"
)

const serviceName = "service-pet-inventory"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamedLevel(cfg.AppEnv, serviceName, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBConfig.Driver),
	)

	// Connect to database and migrate
	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to prepare database", zap.Error(err))
	}

	// Initialize event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaConfig.Brokers, log)
	} else {
		log.Warn("no kafka brokers configured, pet events are disabled")
	}
	defer func() { _ = publisher.Close() }()

	// Initialize application service
	petService := application.NewPetService(
		repository.NewGormPetRepository(db),
		petDomain.NewDefaultImages(cfg.DefaultImages),
		publisher,
		log,
	)

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.RouterConfig{
		ServiceName: serviceName,
		Service:     petService,
		Sessions:    auth.NewSessionManager(cfg.JWTConfig.Secret, cfg.JWTConfig.SessionTTL),
		CookieName:  cfg.JWTConfig.CookieName,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics.New(),
		Ping:        func(ctx context.Context) error { return database.Ping(ctx, db) },
		Logger:      log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

// openDatabase connects to the configured driver. SQLite and development
// Postgres use GORM auto-migration; other environments run the versioned
// migrations.
func openDatabase(cfg *config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	if cfg.DBConfig.Driver == "sqlite" {
		db, err := database.OpenSQLite(cfg.DBConfig.SQLiteDSN, log)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&repository.PetModel{}); err != nil {
			return nil, fmt.Errorf("failed to auto-migrate: %w", err)
		}
		return db, nil
	}

	db, err := database.Connect(cfg.DBConfig.Postgres, log)
	if err != nil {
		return nil, err
	}
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.PetModel{}); err != nil {
			return nil, fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
		return db, nil
	}
	if err := database.RunMigrations(cfg.DBConfig.Postgres.DatabaseURL(), log); err != nil {
		return nil, err
	}
	return db, nil
}
