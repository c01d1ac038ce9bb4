// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level failures into one VALIDATION_ERROR
// and normalises the text stored under unique indexes.
//
//	validator := &validate.Validator{}
//	validator.Required("code", code).MaxLen("code", code, 10).LocaleCode("code", code)
//	if err := validator.Err(); err != nil {
//		return err
//	}
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator accumulates failures. Use one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Positive fails if the identifier is zero or negative.
func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, "Must be a positive identifier")
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// LocaleCode fails if the value is not a well-formed BCP 47 language tag
// (e.g. "en", "pt-BR", "zh-Hant").
//
// Empty values are left to [Validator.Required].
func (v *Validator) LocaleCode(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := language.Parse(value); err != nil {
		v.add(field, "Must be a valid BCP 47 language tag")
	}
	return v
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns VALIDATION_ERROR with one detail per failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// Normalize trims surrounding whitespace and composes the string to NFC so
// that visually identical names share one unique-index entry.
func Normalize(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// NormalizeText composes the string to NFC without trimming it.
func NormalizeText(value string) string {
	return norm.NFC.String(value)
}
