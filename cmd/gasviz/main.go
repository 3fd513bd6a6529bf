package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gasviz/internal/app"
	"gasviz/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		slog.Error("Gas price visualization failed", "error", err)
		stop()
		os.Exit(1)
	}
}
