// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hondana-app/hondana/internal/platform/respond"
)

// Handler exposes the tag domain over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a tag [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tag routes onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTags)
	router.Get("/by-slug/{slug}", handler.getTagBySlug)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) getTagBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	entity, err := handler.service.GetTagBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}
