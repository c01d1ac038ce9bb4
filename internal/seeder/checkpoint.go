// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/lexicon/internal/platform/constants"
)

// RedisCheckpointer keeps one expiring integer per kind.
type RedisCheckpointer struct {
	client *redis.Client
}

func NewRedisCheckpointer(client *redis.Client) *RedisCheckpointer {
	return &RedisCheckpointer{client: client}
}

// Load returns 0 when no checkpoint is stored.
func (checkpointer *RedisCheckpointer) Load(context context.Context, kind Kind) (int, error) {
	rows, err := checkpointer.client.Get(context, checkpointKey(kind)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_checkpoint_load_failed: %w", err)
	}
	return rows, nil
}

func (checkpointer *RedisCheckpointer) Save(context context.Context, kind Kind, rows int) error {
	if err := checkpointer.client.Set(context, checkpointKey(kind), rows, constants.SeedCheckpointTTL).Err(); err != nil {
		return fmt.Errorf("redis_checkpoint_save_failed: %w", err)
	}
	return nil
}

func (checkpointer *RedisCheckpointer) Clear(context context.Context, kind Kind) error {
	if err := checkpointer.client.Del(context, checkpointKey(kind)).Err(); err != nil {
		return fmt.Errorf("redis_checkpoint_clear_failed: %w", err)
	}
	return nil
}

func checkpointKey(kind Kind) string {
	return constants.RedisPrefixSeedCheckpoint + string(kind)
}

// MemoryCheckpointer is used when no Redis is configured. Progress does not
// survive the process.
type MemoryCheckpointer struct {
	mu   sync.Mutex
	rows map[Kind]int
}

func NewMemoryCheckpointer() *MemoryCheckpointer {
	return &MemoryCheckpointer{rows: map[Kind]int{}}
}

func (checkpointer *MemoryCheckpointer) Load(_ context.Context, kind Kind) (int, error) {
	checkpointer.mu.Lock()
	defer checkpointer.mu.Unlock()
	return checkpointer.rows[kind], nil
}

func (checkpointer *MemoryCheckpointer) Save(_ context.Context, kind Kind, rows int) error {
	checkpointer.mu.Lock()
	defer checkpointer.mu.Unlock()
	checkpointer.rows[kind] = rows
	return nil
}

func (checkpointer *MemoryCheckpointer) Clear(_ context.Context, kind Kind) error {
	checkpointer.mu.Lock()
	defer checkpointer.mu.Unlock()
	delete(checkpointer.rows, kind)
	return nil
}
