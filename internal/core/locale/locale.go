// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package locale manages the languages translations are written in.
package locale

import (
	"time"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

// Locale represents a language/region identifier such as "en" or "pt-BR".
type Locale struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the payload accepted by create and update.
type Input struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

const (
	FieldCode = "code"
	FieldName = "name"

	CodeMaxLen = 10
	NameMaxLen = 50
)

var (
	ErrLocaleNotFound = apperr.NotFound("Locale")
	ErrDuplicateCode  = apperr.ConstraintViolation("Locale code already exists", FieldCode)
	ErrLocaleInUse    = apperr.ConstraintViolation("Locale still has translations", "id")
)
