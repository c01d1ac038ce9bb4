// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages free-form labels attached to translations.
package tag

import (
	"time"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

// Tag is a categorisation label shared by any number of translations.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the payload accepted by create and update.
type Input struct {
	Name string `json:"name"`
}

// Filter narrows a tag listing.
type Filter struct {
	// Search is a case-insensitive name prefix.
	Search string
	// IDs restricts the listing to the given tags.
	IDs []int64
}

const (
	FieldName  = "name"
	NameMaxLen = 255
)

var (
	ErrTagNotFound   = apperr.NotFound("Tag")
	ErrDuplicateName = apperr.ConstraintViolation("Tag name already exists", FieldName)
)
