// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/respond"
	"github.com/taibuivan/lexicon/pkg/pagination"
)

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details int
	}{
		{"not_found", apperr.NotFound("Tag"), http.StatusNotFound, apperr.CodeNotFound, 0},
		{"wrapped_app_error", fmt.Errorf("service: %w", apperr.ConstraintViolation("exists", "key")), http.StatusUnprocessableEntity, apperr.CodeConstraintViolation, 1},
		{"plain_error", errors.New("pq: connection reset"), http.StatusInternalServerError, apperr.CodeInternal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Len(t, body.Details, tt.details)
			assert.NotContains(t, body.Error, "pq:")
		})
	}
}

func TestError_ContextErrorsWriteNothing(t *testing.T) {
	for _, err := range []error{context.Canceled, apperr.Internal(context.DeadlineExceeded)} {
		recorder := httptest.NewRecorder()
		respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), err)
		assert.Zero(t, recorder.Body.Len())
	}
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{}, pagination.NewMeta(2, 50, 120))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":[],"meta":{"page":2,"limit":50,"total":120,"total_pages":3}}`,
		recorder.Body.String())
}
