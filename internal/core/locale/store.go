// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLocales(context context.Context) ([]*Locale, error)
	GetLocale(context context.Context, id int64) (*Locale, error)
	GetLocaleByCode(context context.Context, code string) (*Locale, error)
	CreateLocale(context context.Context, locale *Locale) error
	UpdateLocale(context context.Context, locale *Locale) error
	DeleteLocale(context context.Context, id int64) error
}
