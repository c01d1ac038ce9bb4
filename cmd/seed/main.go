// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed bulk loads the catalogue and creates API accounts.
//
//	seed -kind locales
//	seed -kind tags -count 100000
//	seed -kind translations -count 1000000 -batch 10000 -workers 8
//	seed -kind associations -count 1000000 -resume
//	seed -kind user -email ops@example.com -password 'correct horse'
//
// A finished run prints its summary as JSON on stdout. Interrupting a run
// keeps the last checkpoint so -resume continues from there.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/lexicon/internal/platform/config"
	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/migration"
	pgstore "github.com/taibuivan/lexicon/internal/platform/postgres"
	redisstore "github.com/taibuivan/lexicon/internal/platform/redis"
	"github.com/taibuivan/lexicon/internal/platform/telemetry"
	"github.com/taibuivan/lexicon/internal/seeder"
	"github.com/taibuivan/lexicon/internal/users/auth"
)

const kindUser = "user"

type flags struct {
	kind     string
	count    int
	batch    int
	workers  int
	resume   bool
	email    string
	password string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadSeed()
	if err != nil {
		return err
	}

	var opts flags
	flag.StringVar(&opts.kind, "kind", "", "what to seed: locales, tags, translations, associations or user")
	flag.IntVar(&opts.count, "count", 0, "rows to generate (translations to link for associations)")
	flag.IntVar(&opts.batch, "batch", cfg.SeedBatchSize, "rows per batch")
	flag.IntVar(&opts.workers, "workers", cfg.SeedWorkers, "concurrent batches")
	flag.BoolVar(&opts.resume, "resume", false, "continue from the last checkpoint")
	flag.StringVar(&opts.email, "email", "", "account email (kind user)")
	flag.StringVar(&opts.password, "password", "", "account password (kind user)")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("command", "seed"))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, constants.AppName+"-seed")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("tracing_shutdown_failed", slog.Any("error", err))
		}
	}()

	// Bulk batches may run past the request timeout the API uses.
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log,
		pgstore.WithMaxConns(opts.workers+2),
		pgstore.WithStatementTimeout(0),
		pgstore.WithApplicationName(constants.AppName+"-seed"),
	)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	if opts.kind == kindUser {
		service := auth.NewService(auth.NewAccountRepository(pool), nil, nil, 0, log)
		account, err := service.CreateAccount(ctx, opts.email, opts.password)
		if err != nil {
			return err
		}
		return printJSON(account)
	}

	kind, err := seeder.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	checkpoints, closeCheckpoints, err := newCheckpointer(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer closeCheckpoints()

	runner := seeder.NewRunner(seeder.NewPostgresWriter(pool), checkpoints, log)
	result, err := runner.Run(ctx, seeder.Options{
		Kind:      kind,
		Count:     opts.count,
		BatchSize: opts.batch,
		Workers:   opts.workers,
		Resume:    opts.resume,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

// newCheckpointer prefers Redis so checkpoints outlive the process.
func newCheckpointer(ctx context.Context, redisURL string, log *slog.Logger) (seeder.Checkpointer, func(), error) {
	if redisURL == "" {
		log.Warn("checkpoints_in_memory", slog.String("reason", "REDIS_URL not set"))
		return seeder.NewMemoryCheckpointer(), func() {}, nil
	}

	client, err := redisstore.NewClient(ctx, redisURL, log)
	if err != nil {
		return nil, nil, err
	}
	return seeder.NewRedisCheckpointer(client), closer(client, log), nil
}

func closer(client *redis.Client, log *slog.Logger) func() {
	return func() {
		if err := client.Close(); err != nil {
			log.Error("redis_close_error", slog.Any("error", err))
		}
	}
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
