// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/contributor"
	"github.com/hondana-app/hondana/internal/catalog/tag"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/discovery"
	"github.com/hondana-app/hondana/internal/library/bookmark"
	"github.com/hondana-app/hondana/internal/library/progress"
	"github.com/hondana-app/hondana/internal/platform/config"
	"github.com/hondana-app/hondana/internal/platform/constants"
	"github.com/hondana-app/hondana/internal/platform/middleware"
	"github.com/hondana-app/hondana/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles account and session routes.
	Auth *auth.Handler

	// Title handles the publication catalog.
	Title *title.Handler

	// Chapter handles chapter CRUD and view recording.
	Chapter *chapter.Handler

	// Contributor and Tag serve the catalog reference data.
	Contributor *contributor.Handler
	Tag         *tag.Handler

	// Bookmark and Progress serve the per-user library.
	Bookmark *bookmark.Handler
	Progress *progress.Handler

	// Discovery serves the browse feeds.
	Discovery *discovery.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, statuses middleware.StatusSource, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, statuses))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Locally stored page images; production deployments front this with a CDN.
	fileServer := http.StripPrefix(cfg.ImageBaseURL, http.FileServer(http.Dir(cfg.ImageDir)))
	r.Get(cfg.ImageBaseURL+"/*", fileServer.ServeHTTP)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)

		api.Route("/titles", func(titles chi.Router) {
			h.Title.RegisterRoutes(titles)
			titles.Route("/{titleID}/chapters", h.Chapter.RegisterTitleRoutes)
		})
		api.Route("/chapters", h.Chapter.RegisterRoutes)
		api.Route("/contributors", h.Contributor.RegisterRoutes)
		api.Route("/tags", h.Tag.RegisterRoutes)

		api.Route("/bookmarks", func(bookmarks chi.Router) {
			bookmarks.Use(middleware.RequireAuth())
			h.Bookmark.RegisterRoutes(bookmarks)
		})
		api.Route("/progress", func(reading chi.Router) {
			reading.Use(middleware.RequireAuth())
			h.Progress.RegisterRoutes(reading)
		})

		api.Route("/discovery", h.Discovery.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
