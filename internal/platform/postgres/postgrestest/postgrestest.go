// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgrestest opens a migrated database for integration tests.
//
// Tests using it are skipped unless LEXICON_TEST_DATABASE_URL is set. The
// database is truncated on every Open, so point it at a throwaway instance.
package postgrestest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/migration"
	"github.com/taibuivan/lexicon/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "LEXICON_TEST_DATABASE_URL"

// Open migrates the test database, empties every table and returns a pool
// closed at test cleanup.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsPath(t), logger))

	pool, err := postgres.NewPool(context.Background(), dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tables := []string{
		schema.CoreTagTranslation.Table,
		schema.CoreTranslation.Table,
		schema.CoreTag.Table,
		schema.CoreLocale.Table,
		schema.UserAccount.Table,
	}
	_, err = pool.Exec(context.Background(), "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return pool
}

// migrationsPath resolves data/migrations from this source file.
func migrationsPath(t testing.TB) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	path, err := filepath.Abs(filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations"))
	require.NoError(t, err)
	return path
}
