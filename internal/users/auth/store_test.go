// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/postgres/postgrestest"
	redisclient "github.com/taibuivan/lexicon/internal/platform/redis"
	"github.com/taibuivan/lexicon/internal/users/auth"
	"github.com/taibuivan/lexicon/pkg/uuidv7"
)

func TestPostgresAccountRepository(t *testing.T) {
	pool := postgrestest.Open(t)
	repository := auth.NewAccountRepository(pool)
	ctx := context.Background()

	account := &auth.Account{ID: uuidv7.New(), Email: "ops@example.com", PasswordHash: "hash"}
	require.NoError(t, repository.CreateAccount(ctx, account))
	assert.False(t, account.CreatedAt.IsZero())

	found, err := repository.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	err = repository.CreateAccount(ctx, &auth.Account{ID: uuidv7.New(), Email: "ops@example.com", PasswordHash: "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConstraintViolation))

	_, err = repository.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestRedisRevocationStore(t *testing.T) {
	url := os.Getenv("LEXICON_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LEXICON_TEST_REDIS_URL not set")
	}

	client, err := redisclient.NewClient(context.Background(), url, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	store := auth.NewRevocationStore(client)
	ctx := context.Background()
	tokenID := uuidv7.New()

	revoked, err := store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, tokenID, time.Minute))
	revoked, err = store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, "auth:revoked:"+tokenID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
