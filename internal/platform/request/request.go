// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, JSON bodies and caller identity
// off an incoming request, mapping failures onto apperr values.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/ctxutil"
	"github.com/taibuivan/lexicon/internal/platform/sec"
	"github.com/taibuivan/lexicon/internal/platform/validate"
)

// MaxBodyBytes bounds JSON payloads. Translation values are the largest field.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned for bodies over [MaxBodyBytes].
var ErrBodyTooLarge = apperr.ValidationError("Request body exceeds 1 MiB")

/*
DecodeJSON decodes exactly one JSON value from the body into target.

Unknown fields are ignored. Malformed JSON or trailing data after the value
yields [validate.ErrInvalidJSON].
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses a numeric path parameter such as /tags/{id}.

A malformed or non-positive id can never match a row, so it is reported as
NotFound for resource rather than as a validation failure.
*/
func ID(request *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

// RequiredClaims returns the caller's token claims or Unauthorized.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
