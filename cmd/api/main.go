package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/api"
	"github.com/driveway/rental-system/internal/app"
	"github.com/driveway/rental-system/internal/infrastructure/http/handlers"
	"github.com/driveway/rental-system/internal/pkg/config"
	"github.com/driveway/rental-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Component: "api"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    cfg.IsDevelopment(),
		Component: "api",
	})
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open store")
	}
	defer a.Close()

	e := api.NewRouter(api.Dependencies{
		Identity:  a.Identity,
		Inventory: a.Inventory,
		Bookings:  a.Bookings,
		Dashboard: a.Dashboard,
		Ready:     map[string]handlers.Pinger{a.StoreName: a.Store},
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	waitForShutdown(log)

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
