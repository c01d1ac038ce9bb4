// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool shared by every repository and traces
// each statement as a child span of the caller.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/constants"
)

const (
	defaultMaxConns   = 25
	minConns          = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

type poolOptions struct {
	maxConns         int32
	statementTimeout time.Duration
	applicationName  string
}

// Option tunes [NewPool].
type Option func(*poolOptions)

// WithMaxConns caps the pool size.
func WithMaxConns(n int) Option {
	return func(options *poolOptions) { options.maxConns = int32(n) }
}

// WithStatementTimeout sets the server-side statement_timeout of every
// connection. Zero disables it.
func WithStatementTimeout(timeout time.Duration) Option {
	return func(options *poolOptions) { options.statementTimeout = timeout }
}

// WithApplicationName labels the connections in pg_stat_activity.
func WithApplicationName(name string) Option {
	return func(options *poolOptions) { options.applicationName = name }
}

// NewPool connects to dsn and pings once. By default statements are cut off
// at the request timeout so a slow query cannot outlive its request.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger, opts ...Option) (*pgxpool.Pool, error) {
	options := poolOptions{
		maxConns:         defaultMaxConns,
		statementTimeout: constants.GlobalRequestTimeout,
		applicationName:  constants.AppName,
	}
	for _, opt := range opts {
		opt(&options)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	config.MaxConns = options.maxConns
	config.MinConns = min(minConns, options.maxConns)
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
	config.HealthCheckPeriod = healthCheckPeriod
	config.ConnConfig.ConnectTimeout = connectTimeout
	config.ConnConfig.Tracer = &queryTracer{}

	// Sent in the startup packet, so no extra round-trip per connection.
	config.ConnConfig.RuntimeParams["application_name"] = options.applicationName
	config.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(options.statementTimeout.Milliseconds(), 10)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("application_name", options.applicationName),
		slog.Int("max_conns", int(options.maxConns)),
		slog.Duration("statement_timeout", options.statementTimeout),
	)
	return pool, nil
}

// Ping backs the readiness probe.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
