// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/lexicon", "pgx5://u:p@db:5432/lexicon"},
		{"postgresql://u:p@db/lexicon?sslmode=disable", "pgx5://u:p@db/lexicon?sslmode=disable"},
		{"pgx5://db/lexicon", "pgx5://db/lexicon"},
		{"host=db dbname=lexicon", "host=db dbname=lexicon"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pgx5DSN(tt.in))
	}
}

func TestSlogAdapter_VerboseFollowsLevel(t *testing.T) {
	var buffer bytes.Buffer
	debug := slogAdapter{logger: slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	info := slogAdapter{logger: slog.New(slog.NewTextHandler(&buffer, nil))}

	assert.True(t, debug.Verbose())
	assert.False(t, info.Verbose())

	debug.Printf("1/u init (%s)\n", "12ms")
	assert.Contains(t, buffer.String(), "component=migrate")
	assert.Contains(t, buffer.String(), "1/u init (12ms)")
}
