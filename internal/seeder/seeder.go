// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seeder bulk loads locales, tags, translations and tag links.

A run is split into fixed-size batches handled by a small worker pool. Each
batch is a single insert-if-absent statement, so replaying a batch is harmless
and a run can be resumed from its last checkpoint instead of being atomic as a
whole. Checkpoints record how many leading rows are known to be committed.

Usage:

	runner := seeder.NewRunner(seeder.NewPostgresWriter(pool), seeder.NewRedisCheckpointer(client), logger)
	result, err := runner.Run(ctx, seeder.Options{Kind: seeder.KindTags, Count: 100_000, BatchSize: 5000, Workers: 4})
*/
package seeder

import (
	"fmt"
	"slices"
	"time"
)

// Kind names what a run inserts.
type Kind string

const (
	KindLocales      Kind = "locales"
	KindTags         Kind = "tags"
	KindTranslations Kind = "translations"
	KindAssociations Kind = "associations"
)

var kinds = []Kind{KindLocales, KindTags, KindTranslations, KindAssociations}

// ParseKind validates a kind given on the command line.
func ParseKind(value string) (Kind, error) {
	kind := Kind(value)
	if !slices.Contains(kinds, kind) {
		return "", fmt.Errorf("seeder: unknown kind %q (want one of %v)", value, kinds)
	}
	return kind, nil
}

// Options configures one run.
type Options struct {
	Kind Kind

	// Count is the number of rows to generate. For associations it is the
	// number of translations to link. Ignored for locales.
	Count int

	BatchSize int
	Workers   int

	// Resume skips the batches covered by the stored checkpoint.
	Resume bool
}

func (options Options) validate() error {
	if _, err := ParseKind(string(options.Kind)); err != nil {
		return err
	}
	if options.Kind != KindLocales && options.Count <= 0 {
		return fmt.Errorf("seeder: count must be positive, got %d", options.Count)
	}
	if options.BatchSize <= 0 {
		return fmt.Errorf("seeder: batch size must be positive, got %d", options.BatchSize)
	}
	if options.Workers <= 0 {
		return fmt.Errorf("seeder: workers must be positive, got %d", options.Workers)
	}
	return nil
}

// batches returns how many batches cover Count rows.
func (options Options) batches() int {
	return (options.Count + options.BatchSize - 1) / options.BatchSize
}

// bounds returns the half-open row range [from, to) of batch index.
func (options Options) bounds(index int) (int, int) {
	from := index * options.BatchSize
	return from, min(from+options.BatchSize, options.Count)
}

// Result summarises a finished run.
type Result struct {
	Kind Kind `json:"kind"`
	// Inserted counts new rows. Skipped counts generated rows that already existed.
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
	// Batches run in this invocation, and the index the run started from.
	Batches     int           `json:"batches"`
	StartBatch  int           `json:"start_batch"`
	Duration    time.Duration `json:"duration"`
	Checkpoints int           `json:"checkpoints"`
}
