// @title OTP Share API
// @version 1.0
// @description Shared pool of guest Wi-Fi voucher codes.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"otpshare/internal/config"
	"otpshare/internal/handler"
	"otpshare/internal/middleware"
	"otpshare/internal/port"
	"otpshare/internal/repository/postgres"
	"otpshare/internal/router"
	"otpshare/internal/service"
	s3storage "otpshare/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	otpRepo := postgres.NewOTPRepo(db)
	settingRepo := postgres.NewSettingRepo(db)

	// Backup bucket is optional; without it archives are refused.
	var backupStore port.ObjectStorage
	if cfg.S3.Enabled {
		backupStore, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("Backup archives enabled (bucket %s)", cfg.S3.Bucket)
	}

	// Initialize services
	settingsSvc := service.NewSettingsService(settingRepo, cfg.Settings.CacheTTL)
	authSvc := service.NewAuthService(userRepo, settingsSvc, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	otpSvc := service.NewOTPService(otpRepo)
	importSvc := service.NewImportService(otpRepo, nil, cfg.Import)
	backupSvc := service.NewBackupService(otpRepo, backupStore, cfg.S3, cfg.Backup)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		OTP:      handler.NewOTPHandler(otpSvc),
		Import:   handler.NewImportHandler(importSvc, cfg.Import.MaxFileSizeBytes()),
		User:     handler.NewUserHandler(userSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Backup:   handler.NewBackupHandler(backupSvc),
		Health:   handler.NewHealthHandler(db),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LoginLimiter:   middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	}

	return nil
}
