// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lexicon/internal/platform/validate"
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

func (service *Service) ListLocales(context context.Context) ([]*Locale, error) {
	return service.repo.ListLocales(context)
}

func (service *Service) GetLocale(context context.Context, id int64) (*Locale, error) {
	return service.repo.GetLocale(context, id)
}

func (service *Service) GetLocaleByCode(context context.Context, code string) (*Locale, error) {
	return service.repo.GetLocaleByCode(context, validate.Normalize(code))
}

func (service *Service) CreateLocale(context context.Context, input Input) (*Locale, error) {
	locale, err := service.validate(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateLocale(context, locale); err != nil {
		return nil, err
	}

	service.logger.Info("locale_created", slog.Int64("locale_id", locale.ID), slog.String("code", locale.Code))
	return locale, nil
}

func (service *Service) UpdateLocale(context context.Context, id int64, input Input) (*Locale, error) {
	locale, err := service.validate(input)
	if err != nil {
		return nil, err
	}
	locale.ID = id

	if err := service.repo.UpdateLocale(context, locale); err != nil {
		return nil, err
	}

	service.logger.Info("locale_updated", slog.Int64("locale_id", locale.ID))
	return locale, nil
}

func (service *Service) DeleteLocale(context context.Context, id int64) error {
	if err := service.repo.DeleteLocale(context, id); err != nil {
		return err
	}

	service.logger.Warn("locale_deleted", slog.Int64("locale_id", id))
	return nil
}

func (service *Service) validate(input Input) (*Locale, error) {
	locale := &Locale{
		Code: validate.Normalize(input.Code),
		Name: validate.Normalize(input.Name),
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, locale.Code).
		MaxLen(FieldCode, locale.Code, CodeMaxLen).
		LocaleCode(FieldCode, locale.Code)
	validator.Required(FieldName, locale.Name).
		MaxLen(FieldName, locale.Name, NameMaxLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return locale, nil
}
