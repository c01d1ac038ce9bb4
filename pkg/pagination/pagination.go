// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination turns ?page=&limit= into bounded LIMIT/OFFSET values and
// builds the meta block of list responses. Pages are 1-indexed.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// MaxLimit is the upper bound for items per page to bound single-request cost.
	MaxLimit = 200
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxOffset keeps page*limit inside PostgreSQL's int4 OFFSET range and
	// away from int overflow.
	MaxOffset = 1<<31 - 1
)

// Limits configures page size normalization.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Missing, malformed or non-positive values fall back to the defaults. A limit
// above the maximum is clamped down to the maximum.
func FromRequest(r *http.Request, limits Limits) Params {
	return Normalize(parseIntParam(r, "page", DefaultPage), parseIntParam(r, "limit", 0), limits)
}

// Normalize applies defaults and bounds to raw page and limit values.
func Normalize(page, limit int, limits Limits) Params {
	if limits.Default <= 0 {
		limits.Default = DefaultLimit
	}
	if limits.Max <= 0 {
		limits.Max = MaxLimit
	}

	if page < 1 {
		page = DefaultPage
	}

	switch {
	case limit <= 0:
		limit = limits.Default
	case limit > limits.Max:
		limit = limits.Max
	}

	if page-1 > MaxOffset/limit {
		page = MaxOffset/limit + 1
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
