// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/lexicon/internal/platform/constants"
)

// RedisRevocationStore implements [RevocationStore] with expiring keys.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke marks the token id as revoked. The key expires with the token.
func (repository *RedisRevocationStore) Revoke(context context.Context, tokenID string, ttl time.Duration) error {
	if err := repository.client.Set(context, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_token_failed: %w", err)
	}
	return nil
}

func (repository *RedisRevocationStore) IsRevoked(context context.Context, tokenID string) (bool, error) {
	count, err := repository.client.Exists(context, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_lookup_failed: %w", err)
	}
	return count > 0, nil
}

func revokedKey(tokenID string) string {
	return constants.RedisPrefixRevokedToken + tokenID
}
