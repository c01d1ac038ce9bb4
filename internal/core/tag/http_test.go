// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/core/tag"
	"github.com/taibuivan/lexicon/pkg/pagination"
)

// memoryRepository keeps rows in id order and enforces unique names.
type memoryRepository struct {
	mu   sync.Mutex
	rows []*tag.Tag
	next int64
}

func (repository *memoryRepository) seed(n int) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for range n {
		repository.next++
		repository.rows = append(repository.rows, &tag.Tag{ID: repository.next, Name: fmt.Sprintf("tag_%d", repository.next)})
	}
}

func (repository *memoryRepository) ListTags(_ context.Context, f tag.Filter, limit, offset int) ([]*tag.Tag, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var matched []*tag.Tag
	for _, row := range repository.rows {
		if f.Search != "" && !strings.HasPrefix(strings.ToLower(row.Name), strings.ToLower(f.Search)) {
			continue
		}
		if len(f.IDs) > 0 && !slices.Contains(f.IDs, row.ID) {
			continue
		}
		matched = append(matched, row)
	}

	page := []*tag.Tag{}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		copied := *matched[i]
		page = append(page, &copied)
	}
	return page, len(matched), nil
}

func (repository *memoryRepository) find(id int64) int {
	return slices.IndexFunc(repository.rows, func(row *tag.Tag) bool { return row.ID == id })
}

func (repository *memoryRepository) GetTag(_ context.Context, id int64) (*tag.Tag, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.find(id)
	if index < 0 {
		return nil, tag.ErrTagNotFound
	}
	copied := *repository.rows[index]
	return &copied, nil
}

func (repository *memoryRepository) CreateTag(_ context.Context, t *tag.Tag) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, row := range repository.rows {
		if row.Name == t.Name {
			return tag.ErrDuplicateName
		}
	}
	repository.next++
	t.ID = repository.next
	t.CreatedAt, t.UpdatedAt = time.Now(), time.Now()
	copied := *t
	repository.rows = append(repository.rows, &copied)
	return nil
}

func (repository *memoryRepository) UpdateTag(_ context.Context, t *tag.Tag) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.find(t.ID)
	if index < 0 {
		return tag.ErrTagNotFound
	}
	for _, row := range repository.rows {
		if row.ID != t.ID && row.Name == t.Name {
			return tag.ErrDuplicateName
		}
	}
	t.CreatedAt, t.UpdatedAt = repository.rows[index].CreatedAt, time.Now()
	copied := *t
	repository.rows[index] = &copied
	return nil
}

func (repository *memoryRepository) DeleteTag(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.find(id)
	if index < 0 {
		return tag.ErrTagNotFound
	}
	repository.rows = slices.Delete(repository.rows, index, index+1)
	return nil
}

func newServer(t *testing.T) (*httptest.Server, *memoryRepository) {
	t.Helper()

	repository := &memoryRepository{}
	service := tag.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Route("/tags", tag.NewHandler(service, pagination.DefaultLimits()).RegisterRoutes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, repository
}

type envelope struct {
	Data json.RawMessage  `json:"data"`
	Meta *pagination.Meta `json:"meta"`
	Code string           `json:"code"`
}

func do(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()

	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var payload envelope
	if response.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	}
	return response.StatusCode, payload
}

func TestListTags_LargeCatalogue(t *testing.T) {
	server, repository := newServer(t)
	repository.seed(100_000)

	status, body := do(t, http.MethodGet, server.URL+"/tags", "")
	require.Equal(t, http.StatusOK, status)

	var tags []tag.Tag
	require.NoError(t, json.Unmarshal(body.Data, &tags))
	assert.Len(t, tags, pagination.DefaultLimit)
	assert.Equal(t, int64(1), tags[0].ID)

	require.NotNil(t, body.Meta)
	assert.Equal(t, 100_000, body.Meta.Total)
	assert.Equal(t, 2000, body.Meta.TotalPages)
}

func TestListTags_SearchAndPaging(t *testing.T) {
	server, repository := newServer(t)
	repository.seed(250)

	tests := []struct {
		name      string
		query     string
		wantLen   int
		wantTotal int
		wantFirst int64
	}{
		{"prefix_case_insensitive", "?search=TAG_1", 50, 111, 1},
		{"narrow_prefix", "?search=tag_24", 11, 11, 24},
		{"second_page", "?page=2&limit=100", 100, 250, 101},
		{"limit_clamped", "?limit=1000", pagination.MaxLimit, 250, 1},
		{"ids", "?ids=3,7&ids=9", 3, 3, 3},
		{"no_match", "?search=zzz", 0, 0, 0},
		{"wildcard_is_literal", "?search=tag%25", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, http.MethodGet, server.URL+"/tags"+tt.query, "")
			require.Equal(t, http.StatusOK, status)

			var tags []tag.Tag
			require.NoError(t, json.Unmarshal(body.Data, &tags))
			assert.Len(t, tags, tt.wantLen)
			assert.Equal(t, tt.wantTotal, body.Meta.Total)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, tags[0].ID)
			}
		})
	}
}

func TestTagLifecycle(t *testing.T) {
	server, _ := newServer(t)

	status, body := do(t, http.MethodPost, server.URL+"/tags", `{"name":"ui"}`)
	require.Equal(t, http.StatusCreated, status)
	var created tag.Tag
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "ui", created.Name)

	status, body = do(t, http.MethodPost, server.URL+"/tags", `{"name":"ui"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body.Code)

	status, body = do(t, http.MethodPost, server.URL+"/tags", `{"name":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	do(t, http.MethodPost, server.URL+"/tags", `{"name":"errors"}`)

	status, _ = do(t, http.MethodPut, server.URL+"/tags/1", `{"name":"errors"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = do(t, http.MethodPut, server.URL+"/tags/1", `{"name":"interface"}`)
	require.Equal(t, http.StatusOK, status)
	var updated tag.Tag
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	assert.Equal(t, "interface", updated.Name)

	status, _ = do(t, http.MethodGet, server.URL+"/tags/1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodDelete, server.URL+"/tags/1", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, http.MethodGet, server.URL+"/tags/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodPut, server.URL+"/tags/1", `{"name":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, status)
}
