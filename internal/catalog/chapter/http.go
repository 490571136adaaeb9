// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/middleware"
	requestutil "github.com/hondana-app/hondana/internal/platform/request"
	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// Handler exposes the chapter domain over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTitleRoutes mounts the title-scoped chapter routes
// (list, create, and page upload live under /titles/{titleID}/chapters).
func (handler *Handler) RegisterTitleRoutes(router chi.Router) {
	router.Get("/", handler.listChapters)
	router.Post("/", handler.createChapter)
	router.Post("/pages", handler.uploadPage)
}

// RegisterRoutes mounts the chapter-scoped routes under /chapters.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.getChapter)
	router.Patch("/{id}", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)
	router.Post("/{id}/views", handler.recordView)
}

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Sort:    request.URL.Query().Get("sort"),
		SortDir: request.URL.Query().Get("sort_dir"),
	}

	items, meta, err := handler.service.ListChapters(request.Context(), requestutil.Claims(request), titleID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.CreateChapter(request.Context(), requestutil.Claims(request), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entity)
}

// maxPageUploadBytes caps one raw page image body.
const maxPageUploadBytes = 20 << 20

// uploadPage accepts one raw image body (Content-Type carries the mime) and
// returns the stored object. Clients pass the returned URL in image_urls on
// the subsequent chapter create.
func (handler *Handler) uploadPage(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxPageUploadBytes))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request body unreadable or too large"))
		return
	}

	object, err := handler.service.UploadPage(request.Context(), requestutil.Claims(request), titleID, body, request.Header.Get("Content-Type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, object)
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.GetChapter(request.Context(), requestutil.Claims(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
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

	entity, err := handler.service.UpdateChapter(request.Context(), requestutil.Claims(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), requestutil.Claims(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Authenticated viewers dedup by user ID; anonymous ones by client IP.
	claims := requestutil.Claims(request)
	viewerKey := middleware.RealIP(request)
	if claims != nil {
		viewerKey = claims.UserID
	}

	if err := handler.service.RecordView(request.Context(), claims, id, viewerKey); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
