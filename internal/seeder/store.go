// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder

import "context"

// Writer inserts generated rows. Every Insert method skips rows that already
// exist and returns how many were actually inserted.
type Writer interface {
	InsertLocales(context context.Context, rows []LocaleRow) (int64, error)
	InsertTags(context context.Context, names []string) (int64, error)
	InsertTranslations(context context.Context, rows []TranslationRow) (int64, error)
	InsertAssociations(context context.Context, rows []AssociationRow) (int64, error)

	// LocaleIDs maps every stored locale code to its id.
	LocaleIDs(context context.Context) (map[string]int64, error)
	// TagIDs returns every stored tag id.
	TagIDs(context context.Context) ([]int64, error)
	// TranslationIDs returns up to limit translation ids in id order after skipping offset.
	TranslationIDs(context context.Context, offset, limit int) ([]int64, error)
}

// Checkpointer stores run progress as the number of leading rows committed.
type Checkpointer interface {
	Load(context context.Context, kind Kind) (int, error)
	Save(context context.Context, kind Kind, rows int) error
	Clear(context context.Context, kind Kind) error
}
