// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

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

func (service *Service) ListTags(context context.Context, filter Filter, page pagination.Params) (tags []*Tag, total int, err error) {
	context, span := telemetry.StartSpan(context, "tag.list", trace.WithAttributes(
		attribute.String("search", filter.Search),
		attribute.Int("page", page.Page),
		attribute.Int("limit", page.Limit),
	))
	defer func() { telemetry.EndSpan(span, err) }()

	filter.Search = validate.Normalize(filter.Search)
	return service.repo.ListTags(context, filter, page.Limit, page.Offset())
}

func (service *Service) GetTag(context context.Context, id int64) (*Tag, error) {
	return service.repo.GetTag(context, id)
}

func (service *Service) CreateTag(context context.Context, input Input) (*Tag, error) {
	tag, err := service.validate(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateTag(context, tag); err != nil {
		return nil, err
	}

	service.logger.Info("tag_created", slog.Int64("tag_id", tag.ID), slog.String("name", tag.Name))
	return tag, nil
}

func (service *Service) UpdateTag(context context.Context, id int64, input Input) (*Tag, error) {
	tag, err := service.validate(input)
	if err != nil {
		return nil, err
	}
	tag.ID = id

	if err := service.repo.UpdateTag(context, tag); err != nil {
		return nil, err
	}

	service.logger.Info("tag_updated", slog.Int64("tag_id", tag.ID))
	return tag, nil
}

func (service *Service) DeleteTag(context context.Context, id int64) error {
	if err := service.repo.DeleteTag(context, id); err != nil {
		return err
	}

	service.logger.Warn("tag_deleted", slog.Int64("tag_id", id))
	return nil
}

func (service *Service) validate(input Input) (*Tag, error) {
	tag := &Tag{Name: validate.Normalize(input.Name)}

	validator := &validate.Validator{}
	validator.Required(FieldName, tag.Name).MaxLen(FieldName, tag.Name, NameMaxLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return tag, nil
}
