// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hondana-app/hondana/internal/platform/request"
	"github.com/hondana-app/hondana/internal/platform/respond"
)

// Handler exposes reading progress over HTTP. All routes sit behind the
// RequireAuth middleware at the router level.
type Handler struct {
	service *Service
}

// NewHandler constructs a progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the progress routes onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Put("/chapters/{chapterID}", handler.saveProgress)
	router.Get("/chapters/{chapterID}", handler.getChapterProgress)
	router.Get("/titles/{titleID}", handler.getTitleProgress)
}

func (handler *Handler) saveProgress(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SaveInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.SaveProgress(request.Context(), requestutil.Claims(request), chapterID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) getChapterProgress(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetChapterProgress(request.Context(), requestutil.Claims(request), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) getTitleProgress(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.GetTitleProgress(request.Context(), requestutil.Claims(request), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
