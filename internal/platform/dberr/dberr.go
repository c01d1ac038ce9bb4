// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Constraint Mapping
//
// Uniqueness and referential rules are enforced by PostgreSQL, never by a
// check-then-write in Go. The resulting SQLSTATE (23505, 23503) is turned into
// a client-facing [apperr.AppError] here, keyed by the violated constraint name.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes handled by [Wrap].
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeQueryCanceled       = "57014"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// NoRows is the [Violations] key consulted when a query matched no row, so a
// repository can report "Locale not found" instead of a generic resource.
const NoRows = "pgx:no_rows"

// Violations maps a constraint name to the error reported when it is violated.
type Violations map[string]*apperr.AppError

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Violations, when given, are consulted in order for the violated constraint name.
// Unlisted unique violations fall back to a generic CONSTRAINT_VIOLATION.
func Wrap(err error, action string, violations ...Violations) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		for _, mapping := range violations {
			if mapped, ok := mapping[NoRows]; ok {
				return mapped.WithCause(err)
			}
		}
		return ErrNotFound
	}

	// 2. Caller went away, let the transport decide what to do
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// 3. Constraint classification by SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		for _, mapping := range violations {
			if mapped, ok := mapping[pgError.ConstraintName]; ok {
				return mapped.WithCause(err)
			}
		}

		switch pgError.Code {
		case CodeUniqueViolation:
			return apperr.ConstraintViolation("Resource already exists", "").WithCause(err)
		case CodeForeignKeyViolation:
			return apperr.ConstraintViolation("Resource is referenced by other records", "").WithCause(err)
		case CodeCheckViolation:
			return apperr.ValidationError("Value rejected by storage constraint").WithCause(err)
		case CodeQueryCanceled:
			// The caller's context is still live here, so statement_timeout fired.
			return apperr.Internal(&actionError{action: action + " (statement timeout)", err: err})
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(&actionError{action: action, err: err})
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == CodeUniqueViolation
}

// actionError tags the driver error with the storage action for server logs.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }

func (e *actionError) Unwrap() error { return e.err }
