// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/lexicon/internal/platform/constants"
	requestutil "github.com/taibuivan/lexicon/internal/platform/request"
	"github.com/taibuivan/lexicon/internal/platform/respond"
	"github.com/taibuivan/lexicon/pkg/pagination"
)

type Handler struct {
	service *Service
	limits  pagination.Limits
}

func NewHandler(service *Service, limits pagination.Limits) *Handler {
	return &Handler{service: service, limits: limits}
}

// RegisterRoutes mounts the translation routes. The export streams a whole
// locale and gets its own, longer deadline.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(chimw.Timeout(constants.ExportTimeout)).Get("/export", handler.exportLocale)

	router.Group(func(crud chi.Router) {
		crud.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		crud.Get("/", handler.listTranslations)
		crud.Post("/", handler.createTranslation)

		// Static segments win over /{id} in chi's radix tree.
		crud.Get("/search", handler.searchTranslations)

		crud.Get("/{id}", handler.getTranslation)
		crud.Put("/{id}", handler.updateTranslation)
		crud.Delete("/{id}", handler.deleteTranslation)
	})
}

func (handler *Handler) listTranslations(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request, handler.limits)
	values := request.URL.Query()

	expression, err := ParseFilter(values.Get(FieldFilter))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		LocaleCode: values.Get(FieldLocale),
		KeyPrefix:  values.Get(FieldKey),
		TagName:    values.Get("tag"),
		Expression: expression,
	}

	translations, total, err := handler.service.ListTranslations(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, translations, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) searchTranslations(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request, handler.limits)

	translations, total, err := handler.service.SearchTranslations(request.Context(), request.URL.Query().Get(FieldQuery), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, translations, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTranslation(writer http.ResponseWriter, request *http.Request) {
	translationID, err := requestutil.ID(request, "id", "Translation")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	translation, err := handler.service.GetTranslation(request.Context(), translationID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, translation)
}

func (handler *Handler) createTranslation(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	translation, err := handler.service.CreateTranslation(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, translation)
}

func (handler *Handler) updateTranslation(writer http.ResponseWriter, request *http.Request) {
	translationID, err := requestutil.ID(request, "id", "Translation")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	translation, err := handler.service.UpdateTranslation(request.Context(), translationID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, translation)
}

func (handler *Handler) deleteTranslation(writer http.ResponseWriter, request *http.Request) {
	translationID, err := requestutil.ID(request, "id", "Translation")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTranslation(request.Context(), translationID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// exportLocale writes {"key": "value", ...} for a whole locale.
//
// The body is streamed, so once the first pair is out a later failure can only
// cut the response short. Errors before that get the regular error envelope.
func (handler *Handler) exportLocale(writer http.ResponseWriter, request *http.Request) {
	stream := newExportStream(writer)

	err := handler.service.ExportLocale(request.Context(), request.URL.Query().Get(FieldLocale), stream.write)
	if err != nil {
		if !stream.started {
			respond.Error(writer, request, err)
			return
		}
		stream.abort(request, err)
		return
	}

	stream.close()
}
