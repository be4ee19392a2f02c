// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

// Command api is the entry point for the Inkfold HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Open the page store (and optional mirror).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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
	"time"

	"github.com/inkfold/inkfold/internal/ads"
	"github.com/inkfold/inkfold/internal/api"
	"github.com/inkfold/inkfold/internal/comics"
	"github.com/inkfold/inkfold/internal/pagestore"
	"github.com/inkfold/inkfold/internal/platform/config"
	"github.com/inkfold/inkfold/internal/platform/constants"
	"github.com/inkfold/inkfold/internal/platform/migration"
	pgstore "github.com/inkfold/inkfold/internal/platform/postgres"
	redisstore "github.com/inkfold/inkfold/internal/platform/redis"
	"github.com/inkfold/inkfold/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkfold"))
	slog.SetDefault(log)

	log.Info("[Inkfold] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkfold"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context, cancelled at shutdown to stop background loops.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Page Store ─────────────────────────────────────────────────────
	var mirror pagestore.Mirror
	if cfg.MirrorDir != "" {
		dirMirror, err := pagestore.NewDirMirror(cfg.MirrorDir)
		must(log, err, "open page mirror")
		mirror = dirMirror
	}
	pages, err := pagestore.New(cfg.ComicsDir, mirror)
	must(log, err, "open page store")

	adFiles, err := pagestore.NewDirMirror(cfg.AdsDir)
	must(log, err, "open ad creative store")

	// ── 7. Token Verification ─────────────────────────────────────────────
	// Tokens are minted by the separate accounts service; this API only
	// verifies them against the shared public key.
	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 8. Health handlers (wired with real dependency checkers) ─────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckPageStore: func() error {
			_, err := os.Stat(cfg.ComicsDir)
			return err
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	comicRepository := comics.NewComicRepository(pool)
	pendingRepository := comics.NewPendingRepository(pool)
	actionLogRepository := comics.NewActionLogRepository(pool)
	telemetry := comics.NewTelemetry(rdb, log)
	comicsService := comics.NewService(comicRepository, pendingRepository, actionLogRepository, pages, telemetry, log)
	comicsHandler := comics.NewHandler(comicsService)

	adsRepository := ads.NewRepository(pool)
	clickCounter := ads.NewClickCounter(rdb, log)
	adsService := ads.NewService(adsRepository, adFiles, clickCounter, log)
	adsHandler := ads.NewHandler(adsService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Comics:    comicsHandler,
		Ads:       adsHandler,
	}

	server := api.NewServer(appCtx, cfg, log, verifier, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
