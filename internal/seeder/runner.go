// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/lexicon/internal/platform/telemetry"
)

var (
	ErrNoLocales = errors.New("seeder: no locales stored, seed locales first")
	ErrNoTags    = errors.New("seeder: no tags stored, seed tags first")
)

// Runner drives batches through a [Writer] and records progress.
type Runner struct {
	writer      Writer
	checkpoints Checkpointer
	logger      *slog.Logger
}

func NewRunner(writer Writer, checkpoints Checkpointer, logger *slog.Logger) *Runner {
	return &Runner{writer: writer, checkpoints: checkpoints, logger: logger}
}

// batchOutcome is what a worker reports for one batch.
type batchOutcome struct {
	index     int
	generated int
	inserted  int64
	err       error
}

// references holds the ids a batch generator draws from.
type references struct {
	localeIDs []int64
	tagIDs    []int64
}

/*
Run executes one seeding run.

Description: Batches are queued in index order and processed by
options.Workers goroutines. Batches may finish out of order, so the checkpoint
only advances over the contiguous prefix of finished batches. The first batch
error cancels the rest of the run. The checkpoint is cleared once every batch
has been committed.
*/
func (runner *Runner) Run(ctx context.Context, options Options) (result *Result, err error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "seed.run", trace.WithAttributes(
		attribute.String("kind", string(options.Kind)),
		attribute.Int("count", options.Count),
		attribute.Int("batch_size", options.BatchSize),
	))
	defer func() { telemetry.EndSpan(span, err) }()

	started := time.Now()
	if options.Kind == KindLocales {
		return runner.seedLocales(ctx, started)
	}

	refs, err := runner.references(ctx, options.Kind)
	if err != nil {
		return nil, err
	}

	startBatch := 0
	if options.Resume {
		rows, err := runner.checkpoints.Load(ctx, options.Kind)
		if err != nil {
			return nil, err
		}
		startBatch = min(rows/options.BatchSize, options.batches())
	}

	result = &Result{Kind: options.Kind, StartBatch: startBatch}
	runner.logger.Info("seed_run_started",
		slog.String("kind", string(options.Kind)),
		slog.Int("count", options.Count),
		slog.Int("batches", options.batches()),
		slog.Int("start_batch", startBatch),
		slog.Int("workers", options.Workers),
	)

	if err := runner.runBatches(ctx, options, refs, startBatch, result); err != nil {
		return result, err
	}

	if err := runner.checkpoints.Clear(ctx, options.Kind); err != nil {
		return result, err
	}

	result.Duration = time.Since(started)
	runner.logger.Info("seed_run_completed",
		slog.String("kind", string(options.Kind)),
		slog.Int64("inserted", result.Inserted),
		slog.Int64("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (runner *Runner) runBatches(ctx context.Context, options Options, refs references, startBatch int, result *Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	outcomes := make(chan batchOutcome)

	go func() {
		defer close(jobs)
		for index := startBatch; index < options.batches(); index++ {
			select {
			case jobs <- index:
			case <-ctx.Done():
				return
			}
		}
	}()

	var workers sync.WaitGroup
	for range options.Workers {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for index := range jobs {
				generated, inserted, err := runner.runBatch(ctx, options, refs, index)
				outcomes <- batchOutcome{index: index, generated: generated, inserted: inserted, err: err}
			}
		}()
	}

	go func() {
		workers.Wait()
		close(outcomes)
	}()

	var (
		firstErr  error
		next      = startBatch
		completed = map[int]bool{}
	)
	for outcome := range outcomes {
		if outcome.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("seeder: batch %d: %w", outcome.index, outcome.err)
				cancel()
			}
			continue
		}

		result.Batches++
		result.Inserted += outcome.inserted
		result.Skipped += int64(outcome.generated) - outcome.inserted

		completed[outcome.index] = true
		advanced := false
		for completed[next] {
			delete(completed, next)
			next++
			advanced = true
		}
		if !advanced || firstErr != nil {
			continue
		}

		_, committedRows := options.bounds(next - 1)
		if err := runner.checkpoints.Save(ctx, options.Kind, committedRows); err != nil {
			firstErr = err
			cancel()
			continue
		}
		result.Checkpoints++
	}

	return firstErr
}

// runBatch generates and writes one batch. It returns the number of rows
// generated and the number actually inserted.
func (runner *Runner) runBatch(ctx context.Context, options Options, refs references, index int) (generated int, inserted int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	from, to := options.bounds(index)

	ctx, span := telemetry.StartSpan(ctx, "seed.batch", trace.WithAttributes(
		attribute.String("kind", string(options.Kind)),
		attribute.Int("batch", index),
		attribute.Int("from", from),
		attribute.Int("to", to),
	))
	defer func() {
		span.SetAttributes(attribute.Int64("inserted", inserted))
		telemetry.EndSpan(span, err)
	}()

	switch options.Kind {
	case KindTags:
		names := tagNames(from, to)
		generated = len(names)
		inserted, err = runner.writer.InsertTags(ctx, names)

	case KindTranslations:
		rows := translationRows(from, to, refs.localeIDs)
		generated = len(rows)
		inserted, err = runner.writer.InsertTranslations(ctx, rows)

	case KindAssociations:
		var translationIDs []int64
		translationIDs, err = runner.writer.TranslationIDs(ctx, from, to-from)
		if err != nil {
			return 0, 0, err
		}
		rng := rand.New(rand.NewPCG(uint64(index), 0x746167))
		rows := associationRows(translationIDs, refs.tagIDs, rng)
		generated = len(rows)
		if generated > 0 {
			inserted, err = runner.writer.InsertAssociations(ctx, rows)
		}
	}
	if err != nil {
		return 0, 0, err
	}

	runner.logger.Debug("seed_batch_committed",
		slog.String("kind", string(options.Kind)),
		slog.Int("batch", index),
		slog.Int64("inserted", inserted),
		slog.Int("skipped", generated-int(inserted)),
	)
	return generated, inserted, nil
}

func (runner *Runner) references(ctx context.Context, kind Kind) (references, error) {
	var refs references

	switch kind {
	case KindTranslations:
		localeIDs, err := runner.writer.LocaleIDs(ctx)
		if err != nil {
			return refs, err
		}
		if len(localeIDs) == 0 {
			return refs, ErrNoLocales
		}
		for _, locale := range sortedCodes(localeIDs) {
			refs.localeIDs = append(refs.localeIDs, localeIDs[locale])
		}

	case KindAssociations:
		tagIDs, err := runner.writer.TagIDs(ctx)
		if err != nil {
			return refs, err
		}
		if len(tagIDs) == 0 {
			return refs, ErrNoTags
		}
		refs.tagIDs = tagIDs
	}
	return refs, nil
}

// seedLocales inserts the default locales and their sample strings in one step.
func (runner *Runner) seedLocales(ctx context.Context, started time.Time) (*Result, error) {
	inserted, err := runner.writer.InsertLocales(ctx, defaultLocales)
	if err != nil {
		return nil, err
	}

	localeIDs, err := runner.writer.LocaleIDs(ctx)
	if err != nil {
		return nil, err
	}

	samples := sampleTranslations(localeIDs)
	insertedSamples, err := runner.writer.InsertTranslations(ctx, samples)
	if err != nil {
		return nil, err
	}

	generated := int64(len(defaultLocales) + len(samples))
	result := &Result{
		Kind:     KindLocales,
		Inserted: inserted + insertedSamples,
		Skipped:  generated - inserted - insertedSamples,
		Batches:  1,
		Duration: time.Since(started),
	}

	runner.logger.Info("seed_run_completed",
		slog.String("kind", string(KindLocales)),
		slog.Int64("inserted", result.Inserted),
		slog.Int64("skipped", result.Skipped),
	)
	return result, nil
}
