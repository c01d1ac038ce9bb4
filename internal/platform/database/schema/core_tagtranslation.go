// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTagTranslationTable represents the 'core.tagtranslation' join table
type CoreTagTranslationTable struct {
	Table         string
	TranslationID string
	TagID         string

	// Constraints
	PKey            string
	TagFKey         string
	TranslationFKey string
}

// CoreTagTranslation is the schema definition for core.tagtranslation
var CoreTagTranslation = CoreTagTranslationTable{
	Table:         "core.tagtranslation",
	TranslationID: "translationid",
	TagID:         "tagid",

	PKey:            "tagtranslation_pkey",
	TagFKey:         "tagtranslation_tagid_fkey",
	TranslationFKey: "tagtranslation_translationid_fkey",
}
