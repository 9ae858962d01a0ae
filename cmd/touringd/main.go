// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Touringd is the entry point for the Touring aggregator service.

It loads WASM provider plugins from a directory, exposes a cached,
multi-source search/fetch surface over them, and serves an operator
admin/health HTTP surface. There is no end-user REST API here — that
is the embedder's façade to build directly against the Aggregator.

Usage:

	go run cmd/touringd/main.go [flags]

The flags/environment variables are:

	SERVER_PORT       Port to listen on (default: 8080)
	ENVIRONMENT       deployment environment (development, production)
	DATABASE_URL      Postgres connection string (required)
	PLUGINS_DIR       directory scanned for plugin artifact sets (default: ./plugins)
	SEARCH_TTL_SECS   cache lifetime for search results (default: 3600)
	PAGES_TTL_SECS    cache lifetime for chapter image listings (default: 86400)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish the Postgres connection pool.
 4. Migration: Run idempotent schema updates.
 5. Plugins: Discover every plugin in PLUGINS_DIR and register a slot for it
    (each sandbox is instantiated on its first call).
 6. Wiring: Inject dependencies into the Aggregator and HTTP handlers.
 7. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5eus/touring/internal/aggregator"
	"github.com/5eus/touring/internal/api"
	"github.com/5eus/touring/internal/identity"
	"github.com/5eus/touring/internal/platform/config"
	"github.com/5eus/touring/internal/platform/constants"
	"github.com/5eus/touring/internal/platform/migration"
	pgstore "github.com/5eus/touring/internal/platform/postgres"
	"github.com/5eus/touring/internal/pluginmanager"
	"github.com/5eus/touring/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "touringd"))
	slog.SetDefault(log)

	log.Info("[Touring] service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "touringd"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("plugins_dir", cfg.PluginsDir),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Migrations
	if !cfg.NoMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// # 5. Plugin Manager
	// Discovers every plugin under PLUGINS_DIR and registers a slot for
	// each (§4.D); sandboxes are instantiated lazily on first call.
	manager, err := pluginmanager.New(startupCtx, cfg.PluginsDir, log)
	if err != nil {
		return fmt.Errorf("load plugins: %w", err)
	}
	log.Info("plugins_loaded", slog.Any("names", manager.ListPlugins()))

	// # 6. Domain Wiring
	store := storage.New(pool)
	resolver := identity.New(store)
	agg := aggregator.New(store, manager, resolver, cfg.SearchTTLSecs, cfg.PagesTTLSecs, log)

	// Background shutdown context, separate from appCtx below so plugin
	// teardown isn't racing the HTTP server's own cancellation.
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()
	defer manager.Shutdown(shutdownCtx)

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckPlugins: func() error {
			_, err := os.Stat(cfg.PluginsDir)
			return err
		},
	}, log)

	// # 8. Admin Handler
	adminHdl := api.NewAdminHandler(agg)

	// # 9. API Assembly
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Admin:     adminHdl,
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, handlers)

	// # 10. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("touringd_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_touringd", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
