// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/core/locale"
	"github.com/taibuivan/lexicon/internal/core/tag"
	"github.com/taibuivan/lexicon/internal/core/translation"
	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/postgres/postgrestest"
	"github.com/taibuivan/lexicon/pkg/pagination"
)

type fixture struct {
	pool    *pgxpool.Pool
	service *translation.Service
	english int64
	tags    []int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	pool := postgrestest.Open(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	locales := locale.NewService(locale.NewPostgresRepository(pool), logger)
	english, err := locales.CreateLocale(ctx, locale.Input{Code: "en", Name: "English"})
	require.NoError(t, err)

	tags := tag.NewService(tag.NewPostgresRepository(pool), logger)
	var tagIDs []int64
	for _, name := range []string{"t1", "t2", "t3"} {
		created, err := tags.CreateTag(ctx, tag.Input{Name: name})
		require.NoError(t, err)
		tagIDs = append(tagIDs, created.ID)
	}

	return fixture{
		pool:    pool,
		service: translation.NewService(translation.NewPostgresRepository(pool), logger),
		english: english.ID,
		tags:    tagIDs,
	}
}

func (f fixture) links(t *testing.T, translationID int64) int {
	t.Helper()
	var count int
	err := f.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM core.tagtranslation WHERE translationid = $1`, translationID).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestPostgres_ConcurrentDuplicateKey(t *testing.T) {
	f := newFixture(t)

	const writers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateTranslation(context.Background(), translation.Input{
				LocaleID: f.english, Key: "app.title", Value: "Hi",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apperr.HasCode(err, apperr.CodeConstraintViolation):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, writers-1, conflicts)
}

func TestPostgres_TagDiffAndOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateTranslation(ctx, translation.Input{
		LocaleID: f.english, Key: "k", Value: "v", Tags: []int64{f.tags[0], f.tags[1]},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.tags[0], f.tags[1]}, created.Tags)

	updated, err := f.service.UpdateTranslation(ctx, created.ID, translation.Input{
		LocaleID: f.english, Key: "k", Value: "v", Tags: []int64{f.tags[1], f.tags[2]},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.tags[1], f.tags[2]}, updated.Tags)

	kept, err := f.service.UpdateTranslation(ctx, created.ID, translation.Input{
		LocaleID: f.english, Key: "k", Value: "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.tags[1], f.tags[2]}, kept.Tags)

	_, err = f.service.UpdateTranslation(ctx, created.ID, translation.Input{
		LocaleID: f.english, Key: "k", Value: "v2", Tags: []int64{999999},
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeReferenceNotFound))
	assert.Equal(t, 2, f.links(t, created.ID), "failed update must not touch links")

	require.NoError(t, f.service.DeleteTranslation(ctx, created.ID))
	assert.Zero(t, f.links(t, created.ID))

	err = f.service.DeleteTranslation(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgres_UnknownLocale(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateTranslation(context.Background(), translation.Input{LocaleID: 424242, Key: "k", Value: "v"})
	assert.True(t, apperr.HasCode(err, apperr.CodeReferenceNotFound))
}

func TestPostgres_ListFilterAndExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, input := range []translation.Input{
		{LocaleID: f.english, Key: "home.title", Value: "Home", Tags: []int64{f.tags[0]}},
		{LocaleID: f.english, Key: "app.title", Value: "Hi", Tags: []int64{f.tags[0]}},
		{LocaleID: f.english, Key: "app.menu", Value: "Menu 100%"},
	} {
		_, err := f.service.CreateTranslation(ctx, input)
		require.NoError(t, err)
	}
	page := pagination.Params{Page: 1, Limit: 10}

	rows, total, err := f.service.ListTranslations(ctx, translation.Filter{LocaleCode: "en", KeyPrefix: "app.", TagName: "t1"}, page)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "app.title", rows[0].Key)

	expression, err := translation.ParseFilter(`key = "app.*" AND value != "Hi"`)
	require.NoError(t, err)
	rows, total, err = f.service.ListTranslations(ctx, translation.Filter{Expression: expression}, page)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "app.menu", rows[0].Key)

	rows, total, err = f.service.SearchTranslations(ctx, "100%", page)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "app.menu", rows[0].Key)

	var keys []string
	err = f.service.ExportLocale(ctx, "en", func(key, _ string) error {
		keys = append(keys, key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.menu", "app.title", "home.title"}, keys)

	err = f.service.ExportLocale(ctx, "zz", func(string, string) error { return nil })
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgres_LargeListingLatency(t *testing.T) {
	if testing.Short() {
		t.Skip("seeds 100k rows")
	}
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pool.Exec(ctx, `
		INSERT INTO core.translation (localeid, key, value)
		SELECT $1, 'key.' || lpad(n::text, 6, '0'), 'value ' || n
		FROM generate_series(1, 100000) AS n
	`, f.english)
	require.NoError(t, err)
	_, err = f.pool.Exec(ctx, `ANALYZE core.translation`)
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() (int, error)
	}{
		{"list_locale", func() (int, error) {
			_, total, err := f.service.ListTranslations(ctx, translation.Filter{LocaleCode: "en"}, pagination.Params{Page: 1, Limit: 50})
			return total, err
		}},
		{"list_prefix", func() (int, error) {
			_, total, err := f.service.ListTranslations(ctx, translation.Filter{KeyPrefix: "key.0999"}, pagination.Params{Page: 1, Limit: 50})
			return total, err
		}},
		{"search", func() (int, error) {
			_, total, err := f.service.SearchTranslations(ctx, "value 4242", pagination.Params{Page: 1, Limit: 50})
			return total, err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := time.Now()
			total, err := tt.run()
			elapsed := time.Since(started)

			require.NoError(t, err)
			assert.Positive(t, total)
			assert.Less(t, elapsed, 500*time.Millisecond, fmt.Sprintf("took %s", elapsed))
		})
	}
}
