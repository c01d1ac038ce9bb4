// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import "context"

// ExportFunc receives one exported pair. Returning an error stops the export.
type ExportFunc func(key, value string) error

/*
Repository defines the data access contract for translations.

Implementations must enforce (locale_id, key) uniqueness and the existence of
referenced locales and tags atomically with the write, so concurrent writers
can never both succeed with the same key.
*/
type Repository interface {

	// # Entity Store

	GetTranslation(context context.Context, id int64) (*Translation, error)

	// CreateTranslation inserts the row and its tag links in one transaction.
	CreateTranslation(context context.Context, translation *Translation) error

	// UpdateTranslation replaces locale, key and value. When replaceTags is
	// set the tag set is diffed to exactly translation.Tags.
	UpdateTranslation(context context.Context, translation *Translation, replaceTags bool) error

	// DeleteTranslation removes the row and every tag link pointing at it.
	DeleteTranslation(context context.Context, id int64) error

	// # Query Engine

	ListTranslations(context context.Context, filter Filter, limit, offset int) ([]*Translation, int, error)
	SearchTranslations(context context.Context, term string, limit, offset int) ([]*Translation, int, error)

	// ExportLocale streams every pair of the locale ordered by key.
	// It fails with ErrLocaleNotFound before emitting anything if the code is unknown.
	ExportLocale(context context.Context, localeCode string, emit ExportFunc) error
}
