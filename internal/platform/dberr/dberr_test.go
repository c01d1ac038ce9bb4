// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
)

var localeViolations = dberr.Violations{
	dberr.NoRows:      apperr.NotFound("Locale"),
	"locale_code_key": apperr.ConstraintViolation("Locale code already exists", "code"),
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no_rows_mapped", pgx.ErrNoRows, apperr.CodeNotFound, http.StatusNotFound},
		{"unique_mapped", &pgconn.PgError{Code: dberr.CodeUniqueViolation, ConstraintName: "locale_code_key"}, apperr.CodeConstraintViolation, http.StatusUnprocessableEntity},
		{"unique_unmapped", &pgconn.PgError{Code: dberr.CodeUniqueViolation, ConstraintName: "other_key"}, apperr.CodeConstraintViolation, http.StatusUnprocessableEntity},
		{"foreign_key", &pgconn.PgError{Code: dberr.CodeForeignKeyViolation}, apperr.CodeConstraintViolation, http.StatusUnprocessableEntity},
		{"check", &pgconn.PgError{Code: dberr.CodeCheckViolation}, apperr.CodeValidation, http.StatusUnprocessableEntity},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(fmt.Errorf("query: %w", tt.err), "test_action", localeViolations)
			appError := apperr.As(wrapped)
			require.NotNil(t, appError)
			assert.Equal(t, tt.code, appError.Code)
			assert.Equal(t, tt.status, appError.HTTPStatus)
		})
	}
}

func TestWrap_MappedMessageAndCause(t *testing.T) {
	pgError := &pgconn.PgError{Code: dberr.CodeUniqueViolation, ConstraintName: "locale_code_key"}

	appError := apperr.As(dberr.Wrap(pgError, "create_locale", localeViolations))
	require.NotNil(t, appError)
	assert.Equal(t, "Locale code already exists", appError.Message)
	assert.Equal(t, "code", appError.Details[0].Field)
	assert.ErrorIs(t, appError, pgError)

	// The shared mapping table is never mutated, yet the copy still matches it.
	assert.Nil(t, localeViolations["locale_code_key"].Cause)
	assert.ErrorIs(t, appError, localeViolations["locale_code_key"])
}

func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
	assert.ErrorIs(t, dberr.Wrap(context.Canceled, "list"), context.Canceled)

	// A statement timeout is a server fault, never a silent cancellation.
	timedOut := dberr.Wrap(&pgconn.PgError{Code: dberr.CodeQueryCanceled}, "list")
	assert.NotErrorIs(t, timedOut, context.Canceled)
	assert.True(t, apperr.HasCode(timedOut, apperr.CodeInternal))

	already := apperr.NotFound("Tag")
	assert.Same(t, already, dberr.Wrap(already, "get_tag"))

	assert.Same(t, dberr.ErrNotFound, dberr.Wrap(pgx.ErrNoRows, "get_thing"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: dberr.CodeUniqueViolation}))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: dberr.CodeForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("x")))
}
