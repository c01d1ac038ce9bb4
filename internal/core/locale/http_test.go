// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/core/locale"
)

// memoryRepository models the storage constraints: unique code and
// restricted delete while translations still reference a locale.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*locale.Locale
	inUse  map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: map[int64]*locale.Locale{}, inUse: map[int64]bool{}}
}

func (repository *memoryRepository) ListLocales(context.Context) ([]*locale.Locale, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := []*locale.Locale{}
	for _, row := range repository.rows {
		copied := *row
		result = append(result, &copied)
	}
	// Ordered by code like the SQL store.
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].Code < result[j-1].Code; j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}
	return result, nil
}

func (repository *memoryRepository) GetLocale(_ context.Context, id int64) (*locale.Locale, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	row, ok := repository.rows[id]
	if !ok {
		return nil, locale.ErrLocaleNotFound
	}
	copied := *row
	return &copied, nil
}

func (repository *memoryRepository) GetLocaleByCode(_ context.Context, code string) (*locale.Locale, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, row := range repository.rows {
		if row.Code == code {
			copied := *row
			return &copied, nil
		}
	}
	return nil, locale.ErrLocaleNotFound
}

func (repository *memoryRepository) CreateLocale(_ context.Context, l *locale.Locale) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, row := range repository.rows {
		if row.Code == l.Code {
			return locale.ErrDuplicateCode
		}
	}
	repository.nextID++
	l.ID = repository.nextID
	l.CreatedAt, l.UpdatedAt = time.Now(), time.Now()
	copied := *l
	repository.rows[l.ID] = &copied
	return nil
}

func (repository *memoryRepository) UpdateLocale(_ context.Context, l *locale.Locale) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	current, ok := repository.rows[l.ID]
	if !ok {
		return locale.ErrLocaleNotFound
	}
	for id, row := range repository.rows {
		if id != l.ID && row.Code == l.Code {
			return locale.ErrDuplicateCode
		}
	}
	l.CreatedAt, l.UpdatedAt = current.CreatedAt, time.Now()
	copied := *l
	repository.rows[l.ID] = &copied
	return nil
}

func (repository *memoryRepository) DeleteLocale(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.rows[id]; !ok {
		return locale.ErrLocaleNotFound
	}
	if repository.inUse[id] {
		return locale.ErrLocaleInUse
	}
	delete(repository.rows, id)
	return nil
}

func newServer(t *testing.T) (*httptest.Server, *memoryRepository) {
	t.Helper()

	repository := newMemoryRepository()
	service := locale.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Route("/locales", locale.NewHandler(service).RegisterRoutes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, repository
}

func do(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()

	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var payload map[string]any
	if response.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	}
	return response.StatusCode, payload
}

func TestCreateLocale_DuplicateCode(t *testing.T) {
	server, _ := newServer(t)

	status, body := do(t, http.MethodPost, server.URL+"/locales", `{"code":"en","name":"English"}`)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "en", data["code"])
	assert.Equal(t, "English", data["name"])

	status, body = do(t, http.MethodPost, server.URL+"/locales", `{"code":"en","name":"English"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body["code"])
}

func TestCreateLocale_Validation(t *testing.T) {
	server, _ := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing_code", `{"name":"English"}`},
		{"missing_name", `{"code":"en"}`},
		{"code_too_long", `{"code":"en-US-x-abcdef","name":"English"}`},
		{"name_too_long", `{"code":"en","name":"` + strings.Repeat("n", 51) + `"}`},
		{"malformed_code", `{"code":"not a code","name":"English"}`},
		{"invalid_json", `{"code":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, http.MethodPost, server.URL+"/locales", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		})
	}
}

func TestLocaleLifecycle(t *testing.T) {
	server, repository := newServer(t)

	do(t, http.MethodPost, server.URL+"/locales", `{"code":"fr","name":"French"}`)
	do(t, http.MethodPost, server.URL+"/locales", `{"code":"de","name":"German"}`)

	status, body := do(t, http.MethodGet, server.URL+"/locales", "")
	require.Equal(t, http.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "de", list[0].(map[string]any)["code"])

	status, body = do(t, http.MethodPut, server.URL+"/locales/1", `{"code":"fr-CA","name":"Canadian French"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fr-CA", body["data"].(map[string]any)["code"])

	// Keeping its own code is not a duplicate.
	status, _ = do(t, http.MethodPut, server.URL+"/locales/1", `{"code":"fr-CA","name":"Français canadien"}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodPut, server.URL+"/locales/1", `{"code":"de","name":"German"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = do(t, http.MethodPut, server.URL+"/locales/99", `{"code":"it","name":"Italian"}`)
	assert.Equal(t, http.StatusNotFound, status)

	repository.inUse[2] = true
	status, body = do(t, http.MethodDelete, server.URL+"/locales/2", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body["code"])

	status, _ = do(t, http.MethodDelete, server.URL+"/locales/1", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, http.MethodGet, server.URL+"/locales/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodDelete, server.URL+"/locales/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, server.URL+"/locales/abc", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateLocale_NormalizesInput(t *testing.T) {
	server, _ := newServer(t)

	status, body := do(t, http.MethodPost, server.URL+"/locales", `{"code":"  es ","name":" Español "}`)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "es", data["code"])
	assert.Equal(t, "Español", data["name"])
}
