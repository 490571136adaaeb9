// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package bookmark

import (
	"context"
	"log/slog"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/pkg/pagination"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates bookmark operations. All operations require an
// authenticated principal; bookmarks belong exclusively to their creator.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Bookmark Operations

/*
AddBookmark saves a title for the acting user.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: string (UUID)

Returns:
  - error: UNAUTHORIZED for anonymous callers; CONFLICT when already bookmarked
*/
func (service *Service) AddBookmark(context context.Context, claims *sec.AuthClaims, titleID string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	entity := &Bookmark{
		ID:      uuidv7.Must(),
		UserID:  claims.UserID,
		TitleID: titleID,
	}

	if err := service.repo.Add(context, entity); err != nil {
		return err
	}

	service.logger.Info("bookmark_added",
		slog.String("user_id", claims.UserID),
		slog.String("title_id", titleID),
	)

	return nil
}

/*
RemoveBookmark deletes the acting user's bookmark on a title.

Returns:
  - error: UNAUTHORIZED for anonymous callers; NOT_FOUND when absent
*/
func (service *Service) RemoveBookmark(context context.Context, claims *sec.AuthClaims, titleID string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if err := service.repo.Remove(context, claims.UserID, titleID); err != nil {
		return err
	}

	service.logger.Info("bookmark_removed",
		slog.String("user_id", claims.UserID),
		slog.String("title_id", titleID),
	)

	return nil
}

/*
ToggleBookmark flips the bookmark state atomically.

Description: The store executes the insert-or-delete as one statement, so
two toggles in immediate succession always return to the original state and
concurrent toggles cannot both observe "absent".

Returns:
  - bool: true when the title is now bookmarked
  - error: UNAUTHORIZED for anonymous callers; storage failures
*/
func (service *Service) ToggleBookmark(context context.Context, claims *sec.AuthClaims, titleID string) (bool, error) {
	if claims == nil {
		return false, apperr.Unauthorized("Authentication required")
	}

	bookmarked, err := service.repo.Toggle(context, uuidv7.Must(), claims.UserID, titleID)
	if err != nil {
		return false, err
	}

	service.logger.Info("bookmark_toggled",
		slog.String("user_id", claims.UserID),
		slog.String("title_id", titleID),
		slog.Bool("bookmarked", bookmarked),
	)

	return bookmarked, nil
}

// IsBookmarked reports whether the acting user has bookmarked the title.
// A missing record is a normal false result, never an error.
func (service *Service) IsBookmarked(context context.Context, claims *sec.AuthClaims, titleID string) (bool, error) {
	if claims == nil {
		return false, apperr.Unauthorized("Authentication required")
	}
	return service.repo.Exists(context, claims.UserID, titleID)
}

// ListBookmarks returns the acting user's bookmarks newest first.
func (service *Service) ListBookmarks(context context.Context, claims *sec.AuthClaims, params pagination.Params) ([]*Bookmark, pagination.Meta, error) {
	if claims == nil {
		return nil, pagination.Meta{}, apperr.Unauthorized("Authentication required")
	}

	items, total, err := service.repo.ListByUser(context, claims.UserID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}
