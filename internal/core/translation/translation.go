// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package translation manages key/value strings scoped to a locale and labelled
with tags.

It holds the entity store for translations and their tag links, plus the query
side: filtered listing, substring search and the unpaginated locale export
used to build resource bundles.
*/
package translation

import (
	"time"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

// Translation is one key/value string for one locale.
//
// The pair (LocaleID, Key) is unique. Tags holds the ids of the attached tags,
// ascending and without duplicates.
type Translation struct {
	ID        int64     `json:"id"`
	LocaleID  int64     `json:"locale_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Tags      []int64   `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the payload accepted by create and update.
//
// On update a missing "tags" field leaves the tag set untouched, while an
// explicit empty list clears it.
type Input struct {
	LocaleID int64   `json:"locale_id"`
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	Tags     []int64 `json:"tags"`
}

// Filter narrows a translation listing.
type Filter struct {
	// LocaleCode restricts results to one locale.
	LocaleCode string
	// KeyPrefix is a case-sensitive key prefix.
	KeyPrefix string
	// TagName keeps only translations carrying the named tag.
	TagName string
	// Expression is an optional AIP-160 filter over key, value, locale_id,
	// created_at and updated_at.
	Expression *Expression
}

const (
	FieldLocaleID = "locale_id"
	FieldKey      = "key"
	FieldValue    = "value"
	FieldTags     = "tags"
	FieldFilter   = "filter"
	FieldQuery    = "query"
	FieldLocale   = "locale"

	KeyMaxLen   = 255
	ValueMaxLen = 65535
)

var (
	ErrTranslationNotFound = apperr.NotFound("Translation")
	ErrLocaleNotFound      = apperr.NotFound("Locale")
	ErrDuplicateKey        = apperr.ConstraintViolation("Key already exists for this locale", FieldKey)
	ErrUnknownLocale       = apperr.ReferenceNotFound("Locale", FieldLocaleID)
	ErrUnknownTag          = apperr.ReferenceNotFound("Tag", FieldTags)
)
