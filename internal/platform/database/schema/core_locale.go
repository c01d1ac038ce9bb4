// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreLocaleTable represents the 'core.locale' table
type CoreLocaleTable struct {
	Table     string
	ID        string
	Code      string
	Name      string
	CreatedAt string
	UpdatedAt string

	// Constraints
	CodeKey string
}

// CoreLocale is the schema definition for core.locale
var CoreLocale = CoreLocaleTable{
	Table:     "core.locale",
	ID:        "id",
	Code:      "code",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",

	CodeKey: "locale_code_key",
}

func (t CoreLocaleTable) Columns() []string {
	return []string{t.ID, t.Code, t.Name, t.CreatedAt, t.UpdatedAt}
}
