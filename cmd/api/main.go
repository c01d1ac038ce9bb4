// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api serves the Lexicon translation catalogue over HTTP.
//
// Startup connects PostgreSQL and Redis, applies pending migrations, wires
// the locale, tag, translation and auth handlers and listens until SIGINT or
// SIGTERM. Shutdown drains in-flight requests, then closes the stores.
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

	"github.com/taibuivan/lexicon/internal/api"
	"github.com/taibuivan/lexicon/internal/core/locale"
	"github.com/taibuivan/lexicon/internal/core/tag"
	"github.com/taibuivan/lexicon/internal/core/translation"
	"github.com/taibuivan/lexicon/internal/platform/config"
	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/migration"
	pgstore "github.com/taibuivan/lexicon/internal/platform/postgres"
	redisstore "github.com/taibuivan/lexicon/internal/platform/redis"
	"github.com/taibuivan/lexicon/internal/platform/sec"
	"github.com/taibuivan/lexicon/internal/platform/telemetry"
	"github.com/taibuivan/lexicon/internal/users/auth"
)

// startupTimeout bounds connecting and migrating, so a wrong DSN fails fast.
const startupTimeout = 30 * time.Second

func main() {
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("startup_failure", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server_stopped_cleanly")
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
	}
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("tracing", cfg.OTLPEndpoint != ""),
		slog.String("version", constants.AppVersion),
	)

	// Cancelled on the first signal. It also stops the rate limiter sweeper.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancelStartup := context.WithTimeout(rootCtx, startupTimeout)
	defer cancelStartup()

	shutdownTracing, err := telemetry.Setup(startupCtx, cfg.OTLPEndpoint, constants.AppName)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer flushTracing(log, shutdownTracing)

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis_close_error", slog.Any("error", err))
		}
	}()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}
	authService := auth.NewService(
		auth.NewAccountRepository(pool),
		auth.NewRevocationStore(rdb),
		tokens,
		cfg.AccessTokenTTL,
		log,
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	limits := cfg.PageLimits()
	server := api.NewServer(rootCtx, cfg, log, authService, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        auth.NewHandler(authService),
		Locale:      locale.NewHandler(locale.NewService(locale.NewPostgresRepository(pool), log)),
		Tag:         tag.NewHandler(tag.NewService(tag.NewPostgresRepository(pool), log), limits),
		Translation: translation.NewHandler(translation.NewService(translation.NewPostgresRepository(pool), log), limits),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	return server.Shutdown(constants.ShutdownTimeout)
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

func flushTracing(log *slog.Logger, shutdown telemetry.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("tracing_shutdown_failed", slog.Any("error", err))
	}
}
