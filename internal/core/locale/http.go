// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lexicon/internal/platform/request"
	"github.com/taibuivan/lexicon/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLocales)
	router.Post("/", handler.createLocale)
	router.Get("/{id}", handler.getLocale)
	router.Put("/{id}", handler.updateLocale)
	router.Delete("/{id}", handler.deleteLocale)
}

func (handler *Handler) listLocales(writer http.ResponseWriter, request *http.Request) {
	locales, err := handler.service.ListLocales(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locales)
}

func (handler *Handler) getLocale(writer http.ResponseWriter, request *http.Request) {
	localeID, err := requestutil.ID(request, "id", "Locale")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	locale, err := handler.service.GetLocale(request.Context(), localeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locale)
}

func (handler *Handler) createLocale(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	locale, err := handler.service.CreateLocale(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, locale)
}

func (handler *Handler) updateLocale(writer http.ResponseWriter, request *http.Request) {
	localeID, err := requestutil.ID(request, "id", "Locale")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	locale, err := handler.service.UpdateLocale(request.Context(), localeID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locale)
}

func (handler *Handler) deleteLocale(writer http.ResponseWriter, request *http.Request) {
	localeID, err := requestutil.ID(request, "id", "Locale")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLocale(request.Context(), localeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
