package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/daemon"
	"github.com/thenoetrevino/lanes/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Log); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	application, err := app.FromConfig(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close application", "error", err)
		}
	}()

	slog.Info("lanes daemon starting", "pid", os.Getpid(), "lock_backend", cfg.Lock.Backend)

	// Sweep until shutdown
	sweeper := daemon.NewSweeper(application)
	if err := sweeper.Run(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		cancel()
		os.Exit(1)
	}

	slog.Info("lanes daemon shutting down gracefully")
}
