package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/docs"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/config"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/db"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/email"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/logger"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/server"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/storage"
)

// @title Coach Platform API
// @version 1.0
// @description API for the coaching platform: accounts, time slots, booking types, discounts, sessions, and messaging.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting coach platform application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	files, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("File storage initialized")

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()
	logger.Info("Email service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	srv := server.New(database, cfg, emailService, files)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
