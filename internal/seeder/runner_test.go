// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/seeder"
)

// memoryWriter enforces the same natural keys as the database.
type memoryWriter struct {
	mu           sync.Mutex
	locales      map[string]int64
	tags         map[string]int64
	translations map[string]int64
	links        map[[2]int64]bool
	tagCalls     []string
	failOn       string
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{
		locales:      map[string]int64{},
		tags:         map[string]int64{},
		translations: map[string]int64{},
		links:        map[[2]int64]bool{},
	}
}

func (writer *memoryWriter) InsertLocales(_ context.Context, rows []seeder.LocaleRow) (int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var inserted int64
	for _, row := range rows {
		if _, ok := writer.locales[row.Code]; !ok {
			writer.locales[row.Code] = int64(len(writer.locales) + 1)
			inserted++
		}
	}
	return inserted, nil
}

func (writer *memoryWriter) InsertTags(_ context.Context, names []string) (int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	writer.tagCalls = append(writer.tagCalls, names[0])
	if writer.failOn != "" && slices.Contains(names, writer.failOn) {
		return 0, errors.New("connection reset")
	}

	var inserted int64
	for _, name := range names {
		if _, ok := writer.tags[name]; !ok {
			writer.tags[name] = int64(len(writer.tags) + 1)
			inserted++
		}
	}
	return inserted, nil
}

func (writer *memoryWriter) InsertTranslations(_ context.Context, rows []seeder.TranslationRow) (int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var inserted int64
	for _, row := range rows {
		key := fmt.Sprintf("%d/%s", row.LocaleID, row.Key)
		if _, ok := writer.translations[key]; !ok {
			writer.translations[key] = int64(len(writer.translations) + 1)
			inserted++
		}
	}
	return inserted, nil
}

func (writer *memoryWriter) InsertAssociations(_ context.Context, rows []seeder.AssociationRow) (int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var inserted int64
	for _, row := range rows {
		link := [2]int64{row.TranslationID, row.TagID}
		if !writer.links[link] {
			writer.links[link] = true
			inserted++
		}
	}
	return inserted, nil
}

func (writer *memoryWriter) LocaleIDs(context.Context) (map[string]int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	ids := map[string]int64{}
	for code, id := range writer.locales {
		ids[code] = id
	}
	return ids, nil
}

func (writer *memoryWriter) TagIDs(context.Context) ([]int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var ids []int64
	for _, id := range writer.tags {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (writer *memoryWriter) TranslationIDs(_ context.Context, offset, limit int) ([]int64, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var ids []int64
	for _, id := range writer.translations {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if offset >= len(ids) {
		return nil, nil
	}
	return ids[offset:min(offset+limit, len(ids))], nil
}

func (writer *memoryWriter) setFailOn(name string) {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	writer.failOn = name
}

func newRunner(writer seeder.Writer, checkpoints seeder.Checkpointer) *seeder.Runner {
	return seeder.NewRunner(writer, checkpoints, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRun_TagsIdempotent(t *testing.T) {
	writer := newMemoryWriter()
	checkpoints := seeder.NewMemoryCheckpointer()
	runner := newRunner(writer, checkpoints)
	options := seeder.Options{Kind: seeder.KindTags, Count: 1000, BatchSize: 64, Workers: 4}

	result, err := runner.Run(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.Inserted)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, 16, result.Batches)
	assert.Len(t, writer.tags, 1000)
	assert.Contains(t, writer.tags, "tag_1")
	assert.Contains(t, writer.tags, "tag_1000")

	rows, err := checkpoints.Load(context.Background(), seeder.KindTags)
	require.NoError(t, err)
	assert.Zero(t, rows, "checkpoint is cleared after a complete run")

	result, err = runner.Run(context.Background(), options)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)
	assert.Equal(t, int64(1000), result.Skipped)
	assert.Len(t, writer.tags, 1000)
}

func TestRun_ResumeAfterFailure(t *testing.T) {
	writer := newMemoryWriter()
	checkpoints := seeder.NewMemoryCheckpointer()
	runner := newRunner(writer, checkpoints)
	options := seeder.Options{Kind: seeder.KindTags, Count: 10, BatchSize: 3, Workers: 1}

	writer.setFailOn("tag_7")
	_, err := runner.Run(context.Background(), options)
	require.Error(t, err)

	rows, err := checkpoints.Load(context.Background(), seeder.KindTags)
	require.NoError(t, err)
	assert.Equal(t, 6, rows)

	writer.setFailOn("")
	writer.tagCalls = nil
	options.Resume = true
	result, err := runner.Run(context.Background(), options)
	require.NoError(t, err)

	assert.Equal(t, 2, result.StartBatch)
	assert.Equal(t, []string{"tag_7", "tag_10"}, writer.tagCalls)
	// The failed run may have raced one batch past the failure.
	assert.Equal(t, int64(4), result.Inserted+result.Skipped)
	assert.Len(t, writer.tags, 10)
}

func TestRun_ResumeWithDifferentBatchSize(t *testing.T) {
	writer := newMemoryWriter()
	checkpoints := seeder.NewMemoryCheckpointer()
	require.NoError(t, checkpoints.Save(context.Background(), seeder.KindTags, 7))

	result, err := newRunner(writer, checkpoints).Run(context.Background(), seeder.Options{
		Kind: seeder.KindTags, Count: 10, BatchSize: 5, Workers: 1, Resume: true,
	})
	require.NoError(t, err)

	// 7 committed rows cover one full batch of 5, so the run restarts at row 6.
	assert.Equal(t, 1, result.StartBatch)
	assert.Equal(t, []string{"tag_6"}, writer.tagCalls)
}

func TestRun_LocalesAndTranslations(t *testing.T) {
	writer := newMemoryWriter()
	runner := newRunner(writer, seeder.NewMemoryCheckpointer())
	ctx := context.Background()

	_, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindTranslations, Count: 10, BatchSize: 5, Workers: 2})
	assert.ErrorIs(t, err, seeder.ErrNoLocales)

	result, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindLocales, BatchSize: 5, Workers: 1})
	require.NoError(t, err)
	assert.Len(t, writer.locales, 4)
	assert.Equal(t, int64(4+18), result.Inserted)

	result, err = runner.Run(ctx, seeder.Options{Kind: seeder.KindLocales, BatchSize: 5, Workers: 1})
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)

	result, err = runner.Run(ctx, seeder.Options{Kind: seeder.KindTranslations, Count: 100, BatchSize: 7, Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.Inserted)

	perLocale := map[string]int{}
	for key := range writer.translations {
		if strings.Contains(key, "/seed.") {
			perLocale[strings.SplitN(key, "/", 2)[0]]++
		}
	}
	assert.Equal(t, map[string]int{"1": 25, "2": 25, "3": 25, "4": 25}, perLocale)
}

func TestRun_Associations(t *testing.T) {
	writer := newMemoryWriter()
	runner := newRunner(writer, seeder.NewMemoryCheckpointer())
	ctx := context.Background()

	_, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindAssociations, Count: 10, BatchSize: 5, Workers: 1})
	assert.ErrorIs(t, err, seeder.ErrNoTags)

	_, err = runner.Run(ctx, seeder.Options{Kind: seeder.KindLocales, BatchSize: 5, Workers: 1})
	require.NoError(t, err)
	_, err = runner.Run(ctx, seeder.Options{Kind: seeder.KindTags, Count: 20, BatchSize: 5, Workers: 2})
	require.NoError(t, err)
	_, err = runner.Run(ctx, seeder.Options{Kind: seeder.KindTranslations, Count: 50, BatchSize: 5, Workers: 2})
	require.NoError(t, err)

	// More translations requested than exist: the tail batches are empty.
	result, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindAssociations, Count: 100, BatchSize: 10, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(68), result.Inserted)
	assert.Len(t, writer.links, 68)

	again, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindAssociations, Count: 100, BatchSize: 10, Workers: 2})
	require.NoError(t, err)
	assert.Zero(t, again.Inserted)
}

func TestOptionsValidation(t *testing.T) {
	runner := newRunner(newMemoryWriter(), seeder.NewMemoryCheckpointer())

	tests := []struct {
		name    string
		options seeder.Options
	}{
		{"unknown_kind", seeder.Options{Kind: "users", Count: 1, BatchSize: 1, Workers: 1}},
		{"zero_count", seeder.Options{Kind: seeder.KindTags, BatchSize: 1, Workers: 1}},
		{"zero_batch", seeder.Options{Kind: seeder.KindTags, Count: 1, Workers: 1}},
		{"zero_workers", seeder.Options{Kind: seeder.KindTags, Count: 1, BatchSize: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), tt.options)
			assert.Error(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := seeder.ParseKind("translations")
	require.NoError(t, err)
	assert.Equal(t, seeder.KindTranslations, kind)

	_, err = seeder.ParseKind("accounts")
	assert.Error(t, err)
}
