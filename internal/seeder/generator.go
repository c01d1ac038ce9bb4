// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
)

// LocaleRow is one locale to insert.
type LocaleRow struct {
	Code string
	Name string
}

// TranslationRow is one translation to insert.
type TranslationRow struct {
	LocaleID int64
	Key      string
	Value    string
}

// AssociationRow links a translation to a tag.
type AssociationRow struct {
	TranslationID int64
	TagID         int64
}

var defaultLocales = []LocaleRow{
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "es", Name: "Spanish"},
}

// sampleStrings are the UI strings loaded alongside the default locales.
var sampleStrings = []struct {
	key    string
	values map[string]string
}{
	{"app.title", map[string]string{"en": "My Application", "de": "Meine Anwendung", "es": "Mi Aplicación"}},
	{"app.description", map[string]string{"en": "This is a sample application.", "de": "Dies ist eine Beispielanwendung.", "es": "Esta es una aplicación de ejemplo."}},
	{"button.submit", map[string]string{"en": "Submit", "de": "Einreichen", "es": "Enviar"}},
	{"button.cancel", map[string]string{"en": "Cancel", "de": "Abbrechen", "es": "Cancelar"}},
	{"message.welcome", map[string]string{"en": "Welcome to our application!", "de": "Willkommen in unserer Anwendung!", "es": "¡Bienvenido a nuestra aplicación!"}},
	{"button.language", map[string]string{"en": "Language", "de": "Sprache", "es": "Idioma"}},
}

// sampleTranslations resolves the sample strings against the stored locale
// ids. Strings for locales that are not present are skipped.
func sampleTranslations(localeIDs map[string]int64) []TranslationRow {
	var rows []TranslationRow
	for _, sample := range sampleStrings {
		for _, locale := range defaultLocales {
			value, ok := sample.values[locale.Code]
			localeID, known := localeIDs[locale.Code]
			if !ok || !known {
				continue
			}
			rows = append(rows, TranslationRow{LocaleID: localeID, Key: sample.key, Value: value})
		}
	}
	return rows
}

// tagNames returns tag_<n> for n in (from, to].
func tagNames(from, to int) []string {
	names := make([]string, 0, to-from)
	for n := from + 1; n <= to; n++ {
		names = append(names, fmt.Sprintf("tag_%d", n))
	}
	return names
}

// translationRows spreads rows (from, to] round-robin over the locales.
// Values are random but reproducible for a given row number.
func translationRows(from, to int, localeIDs []int64) []TranslationRow {
	rows := make([]TranslationRow, 0, to-from)
	for n := from + 1; n <= to; n++ {
		rng := rand.New(rand.NewPCG(uint64(n), 0x6c6578))
		rows = append(rows, TranslationRow{
			LocaleID: localeIDs[n%len(localeIDs)],
			Key:      fmt.Sprintf("seed.%d", n),
			Value:    sentence(rng),
		})
	}
	return rows
}

// associationRows gives each translation one random tag.
func associationRows(translationIDs, tagIDs []int64, rng *rand.Rand) []AssociationRow {
	rows := make([]AssociationRow, 0, len(translationIDs))
	for _, translationID := range translationIDs {
		rows = append(rows, AssociationRow{TranslationID: translationID, TagID: tagIDs[rng.IntN(len(tagIDs))]})
	}
	return rows
}

var words = strings.Fields(`
	account action active add alert apply archive back cancel change choose
	close confirm continue copy create delete details done download edit email
	error export field file filter help home import language learn list load
	menu message more name next open page password preview profile refresh
	remove reset save search select send settings share sign start submit
	summary update upload user view welcome`)

// sentence returns 4 to 12 capitalised words ending with a period.
func sentence(rng *rand.Rand) string {
	count := 4 + rng.IntN(9)
	parts := make([]string, count)
	for i := range parts {
		parts[i] = words[rng.IntN(len(words))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ") + "."
}

// sortedCodes fixes the round-robin order independently of map iteration.
func sortedCodes(localeIDs map[string]int64) []string {
	codes := slices.Collect(maps.Keys(localeIDs))
	slices.Sort(codes)
	return codes
}
