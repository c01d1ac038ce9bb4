// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/lexicon/internal/platform/telemetry"
	"github.com/taibuivan/lexicon/internal/platform/validate"
	"github.com/taibuivan/lexicon/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Entity Store

func (service *Service) GetTranslation(context context.Context, id int64) (*Translation, error) {
	return service.repo.GetTranslation(context, id)
}

func (service *Service) CreateTranslation(context context.Context, input Input) (*Translation, error) {
	translation, err := service.validate(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateTranslation(context, translation); err != nil {
		return nil, err
	}

	service.logger.Info("translation_created",
		slog.Int64("translation_id", translation.ID),
		slog.Int64("locale_id", translation.LocaleID),
		slog.String("key", translation.Key),
		slog.Int("tags", len(translation.Tags)),
	)
	return translation, nil
}

// UpdateTranslation replaces the translation fields. A nil input.Tags keeps
// the current tag set, any other value becomes the new set.
func (service *Service) UpdateTranslation(context context.Context, id int64, input Input) (*Translation, error) {
	translation, err := service.validate(input)
	if err != nil {
		return nil, err
	}
	translation.ID = id
	replaceTags := input.Tags != nil

	if err := service.repo.UpdateTranslation(context, translation, replaceTags); err != nil {
		return nil, err
	}
	if translation.Tags == nil {
		translation.Tags = []int64{}
	}

	service.logger.Info("translation_updated",
		slog.Int64("translation_id", translation.ID),
		slog.Bool("tags_replaced", replaceTags),
	)
	return translation, nil
}

func (service *Service) DeleteTranslation(context context.Context, id int64) error {
	if err := service.repo.DeleteTranslation(context, id); err != nil {
		return err
	}

	service.logger.Warn("translation_deleted", slog.Int64("translation_id", id))
	return nil
}

// # Query Engine

func (service *Service) ListTranslations(context context.Context, filter Filter, page pagination.Params) (translations []*Translation, total int, err error) {
	attributes := []attribute.KeyValue{
		attribute.String("locale", filter.LocaleCode),
		attribute.String("key_prefix", filter.KeyPrefix),
		attribute.String("tag", filter.TagName),
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
	}
	if filter.Expression != nil {
		attributes = append(attributes, attribute.String("filter", filter.Expression.String()))
	}

	context, span := telemetry.StartSpan(context, "translation.list", trace.WithAttributes(attributes...))
	defer func() { telemetry.EndSpan(span, err) }()

	filter.LocaleCode = validate.Normalize(filter.LocaleCode)
	filter.KeyPrefix = validate.Normalize(filter.KeyPrefix)
	filter.TagName = validate.Normalize(filter.TagName)

	return service.repo.ListTranslations(context, filter, page.Limit, page.Offset())
}

func (service *Service) SearchTranslations(context context.Context, term string, page pagination.Params) (translations []*Translation, total int, err error) {
	context, span := telemetry.StartSpan(context, "translation.search", trace.WithAttributes(
		attribute.String("query", term),
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
	))
	defer func() { telemetry.EndSpan(span, err) }()

	term = validate.Normalize(term)

	validator := &validate.Validator{}
	validator.Required(FieldQuery, term).MaxLen(FieldQuery, term, KeyMaxLen)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.SearchTranslations(context, term, page.Limit, page.Offset())
}

// ExportLocale streams every key/value pair of the locale to emit, ordered by key.
func (service *Service) ExportLocale(context context.Context, localeCode string, emit ExportFunc) (err error) {
	context, span := telemetry.StartSpan(context, "translation.export", trace.WithAttributes(
		attribute.String("locale", localeCode),
	))

	exported := 0
	defer func() {
		span.SetAttributes(attribute.Int("exported", exported))
		telemetry.EndSpan(span, err)
	}()

	localeCode = validate.Normalize(localeCode)

	validator := &validate.Validator{}
	validator.Required(FieldLocale, localeCode)
	if err := validator.Err(); err != nil {
		return err
	}

	err = service.repo.ExportLocale(context, localeCode, func(key, value string) error {
		exported++
		return emit(key, value)
	})
	if err != nil {
		return err
	}

	service.logger.Debug("locale_exported", slog.String("locale", localeCode), slog.Int("exported", exported))
	return nil
}

// validate normalises the payload into a Translation.
//
// Keys are trimmed and NFC-composed so visually identical keys collide on the
// unique index. Values are composed but keep their surrounding whitespace.
func (service *Service) validate(input Input) (*Translation, error) {
	translation := &Translation{
		LocaleID: input.LocaleID,
		Key:      validate.Normalize(input.Key),
		Value:    validate.NormalizeText(input.Value),
		Tags:     uniqueTags(input.Tags),
	}

	validator := &validate.Validator{}
	validator.Positive(FieldLocaleID, translation.LocaleID)
	validator.Required(FieldKey, translation.Key).MaxLen(FieldKey, translation.Key, KeyMaxLen)
	validator.Required(FieldValue, translation.Value).MaxLen(FieldValue, translation.Value, ValueMaxLen)
	validator.Custom(FieldTags, slices.ContainsFunc(translation.Tags, func(id int64) bool { return id <= 0 }),
		"Tag ids must be positive")

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return translation, nil
}

// uniqueTags returns the ids sorted and without duplicates, never nil.
func uniqueTags(tagIDs []int64) []int64 {
	unique := slices.Clone(tagIDs)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	if unique == nil {
		unique = []int64{}
	}
	return unique
}
