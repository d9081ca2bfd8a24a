package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"statusboard/config"
	"statusboard/internals/app"
	"statusboard/internals/server"
	"statusboard/pkg/logger"
	"syscall"
	"time"

	_ "time/tzdata"
)

func main() {
	configPath := flag.String("config", envOr("STATUSBOARD_CONFIG", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	// Load config
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// ctx is cancelled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Base/global logger
	log := logger.Init(cfg)
	log.Info().Str("config", *configPath).Msg("logger initialized")

	// Inject Dependencies
	container, err := app.NewContainer(ctx, cfg, *configPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Int("monitors", len(container.Catalog.Current().All())).Msg("dependencies initialized")

	if err := container.Rotator.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule day rotation")
	}

	// Register Routes
	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	srv := server.New(fmt.Sprintf(":%d", cfg.Port), router, log)
	serveErr := srv.Start()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		log.Error().Err(err).Msg("server stopped unexpectedly")
	}

	// 1. Stop HTTP server (stop accepting requests)
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// 2. Stop rotation and close infra, bounded by a fresh context
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
