// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

// Command api is the entry point for the Hondana HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/hondana-app/hondana/internal/api"
	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/contributor"
	"github.com/hondana-app/hondana/internal/catalog/tag"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/discovery"
	"github.com/hondana-app/hondana/internal/library/bookmark"
	"github.com/hondana-app/hondana/internal/library/progress"
	"github.com/hondana-app/hondana/internal/platform/config"
	"github.com/hondana-app/hondana/internal/platform/constants"
	"github.com/hondana-app/hondana/internal/platform/migration"
	"github.com/hondana-app/hondana/internal/platform/objstore"
	pgstore "github.com/hondana-app/hondana/internal/platform/postgres"
	redisstore "github.com/hondana-app/hondana/internal/platform/redis"
	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	if !cfg.IsProduction() {
		// Error responses carry cause chains outside production.
		respond.EnableDebugTraces()
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

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

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	images := objstore.NewLocalStore(cfg.ImageDir, cfg.ImageBaseURL)

	accountRepository := auth.NewPostgresAccountRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(accountRepository, sessionRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())

	contributorRepository := contributor.NewPostgresRepository(pool)
	contributorService := contributor.NewService(contributorRepository, log)
	contributorHandler := contributor.NewHandler(contributorService)

	tagRepository := tag.NewPostgresRepository(pool)
	tagService := tag.NewService(tagRepository, log)
	tagHandler := tag.NewHandler(tagService)

	titleRepository := title.NewPostgresRepository(pool)
	titleService := title.NewService(titleRepository, contributorService, tagService, log)
	titleHandler := title.NewHandler(titleService)

	chapterRepository := chapter.NewPostgresRepository(pool)
	viewThrottle := chapter.NewRedisThrottle(rdb)
	chapterService := chapter.NewService(chapterRepository, titleRepository, images, viewThrottle, log)
	chapterHandler := chapter.NewHandler(chapterService)

	bookmarkRepository := bookmark.NewPostgresRepository(pool)
	bookmarkService := bookmark.NewService(bookmarkRepository, log)
	bookmarkHandler := bookmark.NewHandler(bookmarkService)

	progressRepository := progress.NewPostgresRepository(pool)
	progressService := progress.NewService(progressRepository, chapterRepository, titleRepository, chapterService, log)
	progressHandler := progress.NewHandler(progressService)

	discoveryRepository := discovery.NewPostgresRepository(pool)
	discoveryService := discovery.NewService(discoveryRepository, log)
	discoveryHandler := discovery.NewHandler(discoveryService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        authHandler,
		Title:       titleHandler,
		Chapter:     chapterHandler,
		Contributor: contributorHandler,
		Tag:         tagHandler,
		Bookmark:    bookmarkHandler,
		Progress:    progressHandler,
		Discovery:   discoveryHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, accountRepository, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
