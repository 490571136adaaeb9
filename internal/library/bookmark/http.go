// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hondana-app/hondana/internal/platform/request"
	"github.com/hondana-app/hondana/internal/platform/respond"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// Handler exposes bookmark operations over HTTP. All routes sit behind the
// RequireAuth middleware at the router level.
type Handler struct {
	service *Service
}

// NewHandler constructs a bookmark [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the bookmark routes onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBookmarks)
	router.Put("/{titleID}", handler.addBookmark)
	router.Delete("/{titleID}", handler.removeBookmark)
	router.Post("/{titleID}/toggle", handler.toggleBookmark)
	router.Get("/{titleID}", handler.getBookmarkState)
}

func (handler *Handler) listBookmarks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, meta, err := handler.service.ListBookmarks(request.Context(), requestutil.Claims(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, meta)
}

func (handler *Handler) addBookmark(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddBookmark(request.Context(), requestutil.Claims(request), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]bool{"bookmarked": true})
}

func (handler *Handler) removeBookmark(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBookmark(request.Context(), requestutil.Claims(request), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) toggleBookmark(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmarked, err := handler.service.ToggleBookmark(request.Context(), requestutil.Claims(request), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"bookmarked": bookmarked})
}

func (handler *Handler) getBookmarkState(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.ID(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmarked, err := handler.service.IsBookmarked(request.Context(), requestutil.Claims(request), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"bookmarked": bookmarked})
}
