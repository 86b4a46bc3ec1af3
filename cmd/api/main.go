// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the game catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment (and an optional .env file).
//  3. Open the configured store: memory, PostgreSQL (plus migrations) or Redis.
//  4. Wire metrics, the catalog service and HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/catalogo-jogos/internal/api"
	"github.com/taibuivan/catalogo-jogos/internal/core/game"
	"github.com/taibuivan/catalogo-jogos/internal/platform/config"
	"github.com/taibuivan/catalogo-jogos/internal/platform/constants"
	"github.com/taibuivan/catalogo-jogos/internal/platform/metrics"
	"github.com/taibuivan/catalogo-jogos/internal/platform/migration"
	pgstore "github.com/taibuivan/catalogo-jogos/internal/platform/postgres"
	redisstore "github.com/taibuivan/catalogo-jogos/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Bounded so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	repository, checks, closeStore := openStore(startupCtx, cfg, log)
	defer closeStore()

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	gameService := game.NewService(repository, log, recorder)
	gameHandler := game.NewHandler(gameService)

	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, recorder, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Game:      gameHandler,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		closeStore()
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// openStore builds the repository selected by STORE_DRIVER, its readiness
// checks and a close function for shutdown.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (game.Repository, []api.HealthCheck, func()) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")

		checks := []api.HealthCheck{{
			Name:  config.DriverPostgres,
			Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		}}
		closeStore := func() {
			log.Info("closing postgres pool")
			pool.Close()
		}
		return game.NewPostgresRepository(pool), checks, closeStore

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		must(log, err, "connect to redis")

		checks := []api.HealthCheck{{
			Name:  config.DriverRedis,
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, client) },
		}}
		closeStore := func() {
			log.Info("closing redis client")
			if cerr := client.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}
		return game.NewRedisRepository(client, cfg.RedisKeyPrefix), checks, closeStore

	default:
		level := slog.LevelInfo
		if cfg.IsProduction() {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "memory_store_selected", slog.String("note", "data is lost on restart"))
		return game.NewMemoryRepository(), nil, func() {}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
