// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/objstore"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/platform/validate"
	"github.com/hondana-app/hondana/pkg/pagination"
	"github.com/hondana-app/hondana/pkg/pointer"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// # Collaborator Contracts

// TitleCatalog is the narrow slice of the title store the chapter domain
// needs: ownership/slug lookups and the paired view-counter write.
// Satisfied by title.Repository.
type TitleCatalog interface {
	FindByID(context context.Context, id string) (*title.Title, error)
	IncrementViewCount(context context.Context, id string, delta int64) error
}

// # Service Layer

// Service orchestrates the business logic for chapters, including the view
// recording path shared with the reading-progress tracker.
type Service struct {
	repo     Repository
	titles   TitleCatalog
	images   objstore.Store
	throttle ViewThrottle
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, titles TitleCatalog, images objstore.Store, throttle ViewThrottle, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		titles:   titles,
		images:   images,
		throttle: throttle,
		logger:   logger,
	}
}

// # Input Shapes

// Upload carries raw page image bytes for materialization to object storage.
type Upload struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mime_type"`
}

// CreateInput carries the caller-supplied fields for a new chapter.
// Pages may arrive as direct URLs, raw uploads, or a mix; at least one
// image reference is required.
type CreateInput struct {
	Name          string        `json:"name"`
	Ordinal       string        `json:"ordinal"` // Decimal text, e.g. "10.5"
	ImageURLs     []string      `json:"image_urls"`
	Uploads       []Upload      `json:"-"`
	PublishStatus PublishStatus `json:"publish_status"`
}

// UpdateInput carries the mutable fields for an existing chapter.
type UpdateInput struct {
	Name          *string       `json:"name"`
	ImageURLs     []string      `json:"image_urls"`
	PublishStatus PublishStatus `json:"publish_status"`
}

// # Chapter Operations

/*
ListChapters returns a paginated page of a title's chapters.

Description: Non-owner callers only see published chapters; the owner and
admins also see drafts.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous callers)
  - titleID: string (UUID)
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Chapter: The page of chapters
  - pagination.Meta: Page/limit/total/pageCount
  - error: NOT_FOUND when the title is missing; storage failures
*/
func (service *Service) ListChapters(context context.Context, claims *sec.AuthClaims, titleID string, filter Filter, params pagination.Params) ([]*Chapter, pagination.Meta, error) {
	owning, err := service.titles.FindByID(context, titleID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if sec.AuthorizeOwner(claims, owning.OwnerID) != nil {
		filter.PublishStatus = []PublishStatus{PublishPublished}
	}

	items, total, err := service.repo.ListByTitle(context, titleID, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetChapter retrieves a single chapter by ID.

Description: Draft chapters are only visible to their owner or an admin;
everyone else receives NOT_FOUND.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)

Returns:
  - *Chapter: The hydrated domain entity
  - error: NOT_FOUND if missing, soft-deleted, or not visible
*/
func (service *Service) GetChapter(context context.Context, claims *sec.AuthClaims, id string) (*Chapter, error) {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if entity.PublishStatus != PublishPublished {
		if sec.AuthorizeOwner(claims, entity.OwnerID) != nil {
			return nil, apperr.NotFound("Chapter")
		}
	}

	return entity, nil
}

/*
CreateChapter validates, authorizes, and persists a new chapter.

Description: The caller must own the target title (or be admin). Page
uploads are materialized to object storage first; any upload failure aborts
the whole mutation so no chapter row exists without its declared image set.
The chapter slug is derived as {titleSlug}-ch-{ordinal}. The insert and the
owning title's counter bump commit in one transaction; a duplicate ordinal
under the title surfaces as CONFLICT with no counter movement.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: string (UUID of the owning title)
  - input: CreateInput

Returns:
  - *Chapter: The persisted entity
  - error: Authorization, validation, upstream, or persistence errors
*/
func (service *Service) CreateChapter(context context.Context, claims *sec.AuthClaims, titleID string, input CreateInput) (*Chapter, error) {
	owning, err := service.titles.FindByID(context, titleID)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeOwner(claims, owning.OwnerID); err != nil {
		return nil, err
	}

	ordinal, err := ParseOrdinal(input.Ordinal)
	if err != nil {
		return nil, err
	}

	if input.PublishStatus == "" {
		input.PublishStatus = PublishPublished
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldName, input.Name, 255)
	validator.Custom(FieldStatus, !input.PublishStatus.IsValid(), "Unknown publish status")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Materialize uploads before any catalog write. An upstream failure
	// here aborts the mutation with nothing persisted.
	pages, err := service.materializePages(context, titleID, input)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, validate.RequiredError(FieldPages, "At least one page image is required")
	}

	var publishedAt *time.Time
	if input.PublishStatus == PublishPublished {
		publishedAt = pointer.To(time.Now().UTC())
	}

	entity := &Chapter{
		ID:            uuidv7.Must(),
		TitleID:       titleID,
		OwnerID:       claims.UserID,
		Name:          input.Name,
		Slug:          fmt.Sprintf("%s-ch-%s", owning.Slug, ordinal.String()),
		Ordinal:       ordinal,
		Pages:         pages,
		ImageCount:    len(pages),
		PublishStatus: input.PublishStatus,
		PublishedAt:   publishedAt,
	}

	if err := service.repo.Create(context, entity); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", entity.ID),
		slog.String("title_id", titleID),
		slog.String("ordinal", ordinal.String()),
		slog.Int("image_count", entity.ImageCount),
	)

	return entity, nil
}

/*
UpdateChapter applies partial changes to an owned chapter.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Chapter: The updated entity
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) UpdateChapter(context context.Context, claims *sec.AuthClaims, id string, input UpdateInput) (*Chapter, error) {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeOwner(claims, entity.OwnerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		entity.Name = *input.Name
	}
	if input.ImageURLs != nil {
		if len(input.ImageURLs) == 0 {
			return nil, validate.RequiredError(FieldPages, "At least one page image is required")
		}
		entity.Pages = input.ImageURLs
		entity.ImageCount = len(input.ImageURLs)
	}
	if input.PublishStatus != "" {
		if !input.PublishStatus.IsValid() {
			return nil, validate.RequiredError(FieldStatus, "Unknown publish status")
		}
		// First transition to published stamps the publish time.
		if input.PublishStatus == PublishPublished && entity.PublishedAt == nil {
			entity.PublishedAt = pointer.To(time.Now().UTC())
		}
		entity.PublishStatus = input.PublishStatus
	}

	if err := service.repo.Update(context, entity); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", id))
	return entity, nil
}

/*
DeleteChapter soft-deletes an owned chapter.

Description: The delete and the owning title's chapterCount decrement commit
in one transaction. lastChapterAt is left as is even when the deleted
chapter was the most recent.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) DeleteChapter(context context.Context, claims *sec.AuthClaims, id string) error {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := sec.AuthorizeOwner(claims, entity.OwnerID); err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id, entity.TitleID); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted",
		slog.String("chapter_id", id),
		slog.String("title_id", entity.TitleID),
	)

	return nil
}

/*
UploadPage materializes one raw page image ahead of a chapter create.

Description: The caller must own the target title (or be admin). The bytes
land in object storage under the title's folder; the returned URL is meant to
come back in image_urls when the chapter itself is created.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: string (UUID of the owning title)
  - data: []byte (Raw image content)
  - mimeType: string (e.g. "image/webp")

Returns:
  - objstore.Object: The stored page's URL and dimensions
  - error: Authorization, validation, or upstream storage errors
*/
func (service *Service) UploadPage(context context.Context, claims *sec.AuthClaims, titleID string, data []byte, mimeType string) (objstore.Object, error) {
	owning, err := service.titles.FindByID(context, titleID)
	if err != nil {
		return objstore.Object{}, err
	}

	if err := sec.AuthorizeOwner(claims, owning.OwnerID); err != nil {
		return objstore.Object{}, err
	}

	if len(data) == 0 {
		return objstore.Object{}, validate.RequiredError(FieldPages, "Page image bytes are required")
	}

	object, err := service.images.Put(context, data, mimeType, "chapters/"+titleID)
	if err != nil {
		return objstore.Object{}, objstore.WrapErr(err)
	}

	service.logger.Info("chapter_page_uploaded",
		slog.String("title_id", titleID),
		slog.Int("bytes", len(data)),
	)

	return object, nil
}

// # View Recording

/*
RecordView counts a chapter read.

Description: The viewer key (user ID for authenticated readers, client IP
otherwise) is throttled through Redis so repeat opens inside the dedup
window count once. A counted view performs three independent, unordered
writes: chapter viewCount, title viewCount, and an audit row — the last one
only for authenticated viewers. The writes are deliberately not a
transaction; a failure mid-way leaves a transient counter skew that the
offline reconciliation recomputes.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous viewers)
  - chapterID: string (UUID)
  - viewerKey: string (Stable per-viewer dedup key)

Returns:
  - error: NOT_FOUND when the chapter is missing; first failing write otherwise
*/
func (service *Service) RecordView(context context.Context, claims *sec.AuthClaims, chapterID, viewerKey string) error {
	entity, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		return err
	}

	counted, err := service.throttle.FirstView(context, viewerKey, chapterID)
	if err != nil {
		// Fail open: a throttle outage must not block reading, it only
		// risks double counting.
		service.logger.Warn("view_throttle_unavailable",
			slog.String("chapter_id", chapterID),
			slog.Any("error", err),
		)
		counted = true
	}
	if !counted {
		return nil
	}

	// Three independent writes; attempt all, surface the first failure.
	var firstErr error
	if err := service.repo.IncrementViewCount(context, chapterID, 1); err != nil {
		firstErr = err
	}
	if err := service.titles.IncrementViewCount(context, entity.TitleID, 1); err != nil && firstErr == nil {
		firstErr = err
	}
	if claims != nil {
		err := service.repo.InsertViewAudit(context, uuidv7.Must(), chapterID, entity.TitleID, claims.UserID, time.Now().UTC())
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// # Internal Helpers

// materializePages uploads raw page bytes and appends any direct URLs,
// preserving upload order ahead of URL order.
func (service *Service) materializePages(context context.Context, titleID string, input CreateInput) ([]string, error) {
	pages := make([]string, 0, len(input.Uploads)+len(input.ImageURLs))

	for _, upload := range input.Uploads {
		object, err := service.images.Put(context, upload.Data, upload.MimeType, "chapters/"+titleID)
		if err != nil {
			return nil, objstore.WrapErr(err)
		}
		pages = append(pages, object.URL)
	}

	pages = append(pages, input.ImageURLs...)
	return pages, nil
}
