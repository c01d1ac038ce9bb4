// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates time-ordered UUIDv7 strings.
//
// Account ids are UUIDv7 so that new rows land at the right edge of the
// primary key index.
package uuidv7

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics only if the OS random source fails, which is unrecoverable.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
