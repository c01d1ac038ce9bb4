// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table, column and constraint the repositories
// touch, so SQL is assembled from one source of truth instead of string literals.
//
// Constraint names must match data/migrations exactly: [dberr.Violations] maps
// them to client-facing errors.
package schema
