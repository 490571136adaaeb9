// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package contributor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// Handler exposes the contributor domain over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a contributor [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the contributor routes onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listContributors)
	router.Get("/by-slug/{slug}", handler.getContributorBySlug)
}

func (handler *Handler) listContributors(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, total, err := handler.service.ListContributors(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getContributorBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	entity, err := handler.service.GetContributorBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}
