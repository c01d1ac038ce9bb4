// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error taxonomy shared by services and handlers.

	NOT_FOUND             404  unknown id or locale code
	UNAUTHORIZED          401  missing, invalid or revoked token
	VALIDATION_ERROR      422  malformed body or field rule broken
	CONSTRAINT_VIOLATION  422  unique or restrict rule enforced by PostgreSQL
	REFERENCE_NOT_FOUND   422  payload names a locale or tag that does not exist
	RATE_LIMITED          429  client bucket empty
	INTERNAL_ERROR        500  anything else, cause logged and hidden

Package-level *AppError values are templates. Attach a cause with
[AppError.WithCause], which copies, and compare with [errors.Is], which
matches by code and message.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeValidation          = "VALIDATION_ERROR"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeReferenceNotFound   = "REFERENCE_NOT_FOUND"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError carries everything the error envelope needs. Cause is for server
// logs only and never reaches the client.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one offending JSON field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another AppError with the same code and message, so a copy
// made by [AppError.WithCause] still equals its template.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && other.Code == e.Code && other.Message == e.Message
}

// WithCause returns a copy of e carrying cause. e itself is left untouched.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func newError(code string, status int, message string, details ...FieldError) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NotFound reports an unknown id or code, e.g. NotFound("Locale") reads
// "Locale not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg)
}

func ValidationError(msg string, details ...FieldError) *AppError {
	return newError(CodeValidation, http.StatusUnprocessableEntity, msg, details...)
}

// ConstraintViolation reports a unique or restrict rule. field, when known,
// becomes the single detail entry.
func ConstraintViolation(msg, field string) *AppError {
	if field == "" {
		return newError(CodeConstraintViolation, http.StatusUnprocessableEntity, msg)
	}
	return newError(CodeConstraintViolation, http.StatusUnprocessableEntity, msg, FieldError{Field: field, Message: msg})
}

// ReferenceNotFound reports a payload naming a locale or tag that does not exist.
func ReferenceNotFound(resource, field string) *AppError {
	msg := resource + " does not exist"
	return newError(CodeReferenceNotFound, http.StatusUnprocessableEntity, msg, FieldError{Field: field, Message: msg})
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides cause behind a generic message. The cause is only logged.
func Internal(cause error) *AppError {
	appError := newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
