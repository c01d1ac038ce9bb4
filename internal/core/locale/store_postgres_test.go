// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/core/locale"
	"github.com/taibuivan/lexicon/internal/core/translation"
	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/postgres/postgrestest"
)

func newPostgresService(t *testing.T) (*locale.Service, *translation.Service) {
	t.Helper()
	pool := postgrestest.Open(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return locale.NewService(locale.NewPostgresRepository(pool), logger),
		translation.NewService(translation.NewPostgresRepository(pool), logger)
}

func TestPostgres_LocaleLifecycle(t *testing.T) {
	service, _ := newPostgresService(t)
	ctx := context.Background()

	created, err := service.CreateLocale(ctx, locale.Input{Code: "fr", Name: "French"})
	require.NoError(t, err)

	byCode, err := service.GetLocaleByCode(ctx, "fr")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	updated, err := service.UpdateLocale(ctx, created.ID, locale.Input{Code: "fr-CA", Name: "Canadian French"})
	require.NoError(t, err)
	assert.Equal(t, "fr-CA", updated.Code)

	_, err = service.GetLocaleByCode(ctx, "fr")
	assert.ErrorIs(t, err, locale.ErrLocaleNotFound)

	all, err := service.ListLocales(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Canadian French", all[0].Name)

	require.NoError(t, service.DeleteLocale(ctx, created.ID))
	assert.ErrorIs(t, service.DeleteLocale(ctx, created.ID), locale.ErrLocaleNotFound)
	_, err = service.UpdateLocale(ctx, created.ID, locale.Input{Code: "de", Name: "German"})
	assert.ErrorIs(t, err, locale.ErrLocaleNotFound)
}

func TestPostgres_DeleteLocaleInUse(t *testing.T) {
	service, translations := newPostgresService(t)
	ctx := context.Background()

	created, err := service.CreateLocale(ctx, locale.Input{Code: "ja", Name: "Japanese"})
	require.NoError(t, err)
	_, err = translations.CreateTranslation(ctx, translation.Input{LocaleID: created.ID, Key: "app.title", Value: "Lexicon"})
	require.NoError(t, err)

	err = service.DeleteLocale(ctx, created.ID)
	assert.ErrorIs(t, err, locale.ErrLocaleInUse)
	assert.Equal(t, 422, apperr.As(err).HTTPStatus)

	_, err = service.GetLocale(ctx, created.ID)
	assert.NoError(t, err, "restricted delete must leave the row")
}

func TestPostgres_ConcurrentDuplicateCode(t *testing.T) {
	service, _ := newPostgresService(t)

	const writers = 8
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
			_, err := service.CreateLocale(context.Background(), locale.Input{Code: "vi", Name: "Vietnamese"})

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
