package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"climaterisk.app/internal/app"
	"climaterisk.app/internal/config"
	"climaterisk.app/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Warn("Invalid log level, using info", "error", err)
	}
	slog.SetDefault(logger.NewWithLevel(level).WithField("service", "climaterisk").Logger)

	slog.Info("Configuration loaded successfully",
		"port", cfg.Server.Port,
		"cache", cfg.Cache.Type.String(),
		"window_years", cfg.Climate.WindowYears)

	application, err := app.NewApplicationWithConfig(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting Climate Risk API...")
	if err := application.Run(ctx, shutdownTimeout); err != nil {
		slog.Error("Application stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("Application stopped")
}
