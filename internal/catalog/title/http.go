// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hondana-app/hondana/internal/platform/request"
	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/pkg/pagination"
	"github.com/hondana-app/hondana/pkg/query"
)

// Handler exposes the title domain over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the title routes onto the given router.
// Authentication middleware is applied by the parent router; handlers
// read the principal from the request context.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTitles)
	router.Post("/", handler.createTitle)
	router.Get("/mine", handler.listOwnTitles)
	router.Get("/by-slug/{slug}", handler.getTitleBySlug)
	router.Get("/{id}", handler.getTitle)
	router.Patch("/{id}", handler.updateTitle)
	router.Delete("/{id}", handler.deleteTitle)
	router.Patch("/{id}/moderation", handler.moderateTitle)
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := filterFromRequest(request)

	items, meta, err := handler.service.ListTitles(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) listOwnTitles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	claims := requestutil.Claims(request)

	items, meta, err := handler.service.ListOwnTitles(request.Context(), claims, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.CreateTitle(request.Context(), requestutil.Claims(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entity)
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.GetTitle(request.Context(), requestutil.Claims(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) getTitleBySlug(writer http.ResponseWriter, request *http.Request) {
	titleSlug := chi.URLParam(request, "slug")

	entity, err := handler.service.GetTitleBySlug(request.Context(), requestutil.Claims(request), titleSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.UpdateTitle(request.Context(), requestutil.Claims(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), requestutil.Claims(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) moderateTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status ModerationStatus `json:"status"`
	}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ModerateTitle(request.Context(), requestutil.Claims(request), id, input.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// filterFromRequest maps the supported query parameters onto a [Filter].
func filterFromRequest(request *http.Request) Filter {
	values := request.URL.Query()

	var lifecycle []LifecycleStatus
	for _, raw := range query.StringSlice(values.Get("status")) {
		status := LifecycleStatus(raw)
		if status.IsValid() {
			lifecycle = append(lifecycle, status)
		}
	}

	return Filter{
		Query:           values.Get("q"),
		Lifecycle:       lifecycle,
		ContributorSlug: values.Get("contributor"),
		TagSlug:         values.Get("tag"),
		Sort:            values.Get("sort"),
		SortDir:         values.Get("sort_dir"),
	}
}
