// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTranslationTable represents the 'core.translation' table
type CoreTranslationTable struct {
	Table     string
	ID        string
	LocaleID  string
	Key       string
	Value     string
	CreatedAt string
	UpdatedAt string

	// Constraints
	LocaleKeyKey string
	LocaleFKey   string
}

// CoreTranslation is the schema definition for core.translation
var CoreTranslation = CoreTranslationTable{
	Table:     "core.translation",
	ID:        "id",
	LocaleID:  "localeid",
	Key:       "key",
	Value:     "value",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",

	LocaleKeyKey: "translation_localeid_key_key",
	LocaleFKey:   "translation_localeid_fkey",
}

func (t CoreTranslationTable) Columns() []string {
	return []string{t.ID, t.LocaleID, t.Key, t.Value, t.CreatedAt, t.UpdatedAt}
}
