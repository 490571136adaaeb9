// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package discovery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hondana-app/hondana/internal/platform/request"
	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/pkg/convert"
)

// Handler exposes the discovery feeds over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a discovery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the discovery routes onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/trending", handler.trending)
	router.Get("/recently-updated", handler.recentlyUpdated)
	router.Get("/continue-reading", handler.continueReading)
	router.Get("/random", handler.random)
}

// feedLimit reads the optional ?limit= parameter; the service clamps it.
func feedLimit(request *http.Request) int {
	return convert.ToInt(request.URL.Query().Get("limit"))
}

func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	cards, err := handler.service.Trending(request.Context(), feedLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cards)
}

func (handler *Handler) recentlyUpdated(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.RecentlyUpdated(request.Context(), feedLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) continueReading(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.ContinueReading(request.Context(), requestutil.Claims(request), feedLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) random(writer http.ResponseWriter, request *http.Request) {
	cards, err := handler.service.RandomSample(request.Context(), feedLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cards)
}
