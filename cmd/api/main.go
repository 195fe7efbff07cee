package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"biblios/internal/app"
	"biblios/internal/config"
	"biblios/internal/infrastructure/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, app.Options{Migrate: true})
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
