// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/platform/validate"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// # Collaborator Contracts

// ChapterSource resolves chapters so progress records can denormalize the
// owning title. Satisfied by the chapter repository.
type ChapterSource interface {
	FindByID(context context.Context, id string) (*chapter.Chapter, error)
}

// TitleSource resolves titles for per-title progress summaries. Satisfied by
// the title repository.
type TitleSource interface {
	FindByID(context context.Context, id string) (*title.Title, error)
}

// ViewRecorder counts a chapter view on behalf of the reader. Satisfied by
// the chapter service.
type ViewRecorder interface {
	RecordView(context context.Context, claims *sec.AuthClaims, chapterID, viewerKey string) error
}

// # Service Layer

// Service orchestrates reading progress. All operations require an
// authenticated principal.
type Service struct {
	repo     Repository
	chapters ChapterSource
	titles   TitleSource
	views    ViewRecorder
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, chapters ChapterSource, titles TitleSource, views ViewRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		chapters: chapters,
		titles:   titles,
		views:    views,
		logger:   logger,
	}
}

// SaveInput carries the page position for a progress save. IsComplete lets
// the reader mark a chapter finished ahead of the last page; it can only add
// completeness, never retract it once the position itself reaches 100%.
type SaveInput struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	IsComplete  *bool `json:"is_complete"`
}

// # Progress Operations

/*
SaveProgress records how far the user has read into a chapter.

Description: The save upserts on the (user, chapter) pair, so repeated saves
for the same chapter update one record rather than accumulating. The percent
is derived from the page position; a chapter reporting zero total pages yields
zero percent. A reader can mark the chapter complete explicitly before the
last page; a position at 100% completes regardless of the flag. Every save
also counts a view, best-effort.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - chapterID: string (UUID)
  - input: SaveInput

Returns:
  - *Record: The stored record
  - error: UNAUTHORIZED for anonymous callers; NOT_FOUND for unknown chapters;
    VALIDATION_ERROR for negative or inconsistent page positions
*/
func (service *Service) SaveProgress(context context.Context, claims *sec.AuthClaims, chapterID string, input SaveInput) (*Record, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	entity, err := service.chapters.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom("current_page", input.CurrentPage < 0, "current_page must not be negative")
	validator.Custom("total_pages", input.TotalPages < 0, "total_pages must not be negative")
	validator.Custom("current_page", input.TotalPages > 0 && input.CurrentPage > input.TotalPages, "current_page must not exceed total_pages")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	percent := 0
	if input.TotalPages > 0 {
		percent = int(math.Round(100 * float64(input.CurrentPage) / float64(input.TotalPages)))
	}

	// Reaching 100% always completes; an explicit flag can only complete
	// early, never undo that default.
	complete := percent >= 100
	if input.IsComplete != nil && *input.IsComplete {
		complete = true
	}

	record := &Record{
		ID:              uuidv7.Must(),
		UserID:          claims.UserID,
		ChapterID:       chapterID,
		TitleID:         entity.TitleID,
		CurrentPage:     input.CurrentPage,
		TotalPages:      input.TotalPages,
		ProgressPercent: percent,
		IsComplete:      complete,
		LastActivityAt:  time.Now().UTC(),
	}

	if err := service.repo.Upsert(context, record); err != nil {
		return nil, err
	}

	// Reading a chapter is a view. The throttle in the view path keeps
	// repeated saves from inflating the counters, and a failure here never
	// undoes the progress save.
	if err := service.views.RecordView(context, claims, chapterID, claims.UserID); err != nil {
		service.logger.Warn("progress_view_record_failed",
			slog.String("chapter_id", chapterID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("progress_saved",
		slog.String("user_id", claims.UserID),
		slog.String("chapter_id", chapterID),
		slog.Int("progress_percent", percent),
	)

	return record, nil
}

// GetChapterProgress returns the user's record for one chapter.
func (service *Service) GetChapterProgress(context context.Context, claims *sec.AuthClaims, chapterID string) (*Record, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.repo.FindByChapter(context, claims.UserID, chapterID)
}

/*
GetTitleProgress summarizes the user's reading state across a title.

Description: Returns nil without error when the user has no progress on the
title. A title that has since been deleted still yields the raw records with a
zero overall percent rather than an error.

Returns:
  - *TitleProgress: The summary, or nil when no records exist
  - error: UNAUTHORIZED for anonymous callers; storage failures
*/
func (service *Service) GetTitleProgress(context context.Context, claims *sec.AuthClaims, titleID string) (*TitleProgress, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	records, err := service.repo.ListByTitle(context, claims.UserID, titleID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	readChapters := 0
	for _, record := range records {
		if record.IsComplete {
			readChapters++
		}
	}

	chapterCount := 0
	owning, err := service.titles.FindByID(context, titleID)
	switch {
	case err == nil:
		chapterCount = owning.ChapterCount
	case apperr.As(err) != nil && apperr.As(err).Code == "NOT_FOUND":
		// Deleted title: keep the records, report zero overall percent.
	default:
		return nil, err
	}

	percent := 0
	if chapterCount > 0 {
		percent = int(math.Round(100 * float64(readChapters) / float64(chapterCount)))
	}

	return &TitleProgress{
		TitleID:              titleID,
		LastRead:             records[0],
		ReadChapters:         readChapters,
		TitleProgressPercent: percent,
	}, nil
}
