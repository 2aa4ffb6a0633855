package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/snakebite/internal/config"
	"github.com/vbonduro/snakebite/internal/logging"
	"github.com/vbonduro/snakebite/internal/service"
	"github.com/vbonduro/snakebite/internal/session"
	"github.com/vbonduro/snakebite/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	creds, credsErr := config.LoadCredentials(cfg)
	if credsErr != nil {
		logger.Warn("credentials not loaded", "error", credsErr)
	}

	backends, err := session.FromConfig(cfg, creds, credsErr, logger)
	if err != nil {
		logger.Error("failed to configure backends", "error", err)
		return
	}
	defer backends.Close()
	logger.Info("backends configured", "sheet_backend", cfg.SheetBackend, "photo_backend", cfg.PhotoBackend)

	opts := []web.Option{web.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)}
	if backends.LocalPhotos != nil {
		opts = append(opts, web.WithPhotoFiles(backends.LocalPhotos))
	}

	server := web.NewServer(
		service.NewRecordService(backends.Provider, logger),
		service.NewPhotoService(backends.Provider, cfg.StagingDir, logger),
		logger,
		opts...,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
	}
}
