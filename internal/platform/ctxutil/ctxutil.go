// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores per-request values on a [context.Context]: the
// correlation ID, the request-scoped logger and the caller's token claims.
//
// Keys are of an unexported type so no other package can read or overwrite
// them except through these helpers.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lexicon/internal/platform/sec"
)

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyClaims
)

func lookup[T any](ctx context.Context, k key) (T, bool) {
	value, ok := ctx.Value(k).(T)
	return value, ok
}

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns the correlation value, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, keyRequestID)
	return id
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, keyLogger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches the verified access token claims.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, keyClaims)
	return claims
}
