// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package title

import (
	"context"
	"log/slog"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/platform/validate"
	"github.com/hondana-app/hondana/pkg/pagination"
	"github.com/hondana-app/hondana/pkg/slug"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// # Collaborator Contracts

// ContributorResolver resolves contributor display names to IDs,
// creating missing records (create-if-absent keyed by unique name).
// Implemented by the contributor service.
type ContributorResolver interface {
	EnsureByName(context context.Context, names []string) ([]string, error)
}

// TagResolver resolves tag display names to IDs, creating missing records.
// Implemented by the tag service.
type TagResolver interface {
	EnsureByName(context context.Context, names []string) ([]string, error)
}

// # Service Layer

// Service orchestrates the business logic for titles.
type Service struct {
	repo         Repository
	contributors ContributorResolver
	tags         TagResolver
	logger       *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, contributors ContributorResolver, tags TagResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		contributors: contributors,
		tags:         tags,
		logger:       logger,
	}
}

// # Input Shapes

// CreateInput carries the caller-supplied fields for a new title.
type CreateInput struct {
	Name             string          `json:"name"`
	AltNames         []string        `json:"alt_names"`
	Description      string          `json:"description"`
	ThumbnailURL     string          `json:"thumbnail_url"`
	CoverURL         string          `json:"cover_url"`
	Lifecycle        LifecycleStatus `json:"lifecycle_status"`
	ContributorNames []string        `json:"contributor_names"`
	TagNames         []string        `json:"tag_names"`
}

// UpdateInput carries the mutable fields for an existing title.
// Nil relation slices leave the existing relations untouched.
type UpdateInput struct {
	Name             *string         `json:"name"`
	AltNames         []string        `json:"alt_names"`
	Description      *string         `json:"description"`
	ThumbnailURL     *string         `json:"thumbnail_url"`
	CoverURL         *string         `json:"cover_url"`
	Lifecycle        LifecycleStatus `json:"lifecycle_status"`
	ContributorNames []string        `json:"contributor_names"`
	TagNames         []string        `json:"tag_names"`
}

// # Title Operations

/*
CreateTitle validates, authorizes, and persists a new title.

Description: Title creation is restricted to uploader and admin roles. The
slug is derived from the name; requested contributor and tag names are
resolved via create-if-absent keyed by unique display name. Titles created
by non-admins enter moderation as pending; admin creations are approved
directly.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (The acting principal)
  - input: CreateInput

Returns:
  - *Title: The persisted entity
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) CreateTitle(context context.Context, claims *sec.AuthClaims, input CreateInput) (*Title, error) {
	if err := sec.AuthorizeTitleCreation(claims); err != nil {
		return nil, err
	}

	if input.Lifecycle == "" {
		input.Lifecycle = StatusOngoing
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	validator.MaxLen(FieldName, input.Name, 255)
	validator.Custom(FieldLifecycle, !input.Lifecycle.IsValid(), "Unknown lifecycle status")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Moderation gate per role: non-admin creations await review.
	moderation := ModerationPending
	if sec.UserRole(claims.Role) == sec.RoleAdmin {
		moderation = ModerationApproved
	}

	contributorIDs, err := service.contributors.EnsureByName(context, input.ContributorNames)
	if err != nil {
		return nil, err
	}
	tagIDs, err := service.tags.EnsureByName(context, input.TagNames)
	if err != nil {
		return nil, err
	}

	entity := &Title{
		ID:           uuidv7.Must(),
		OwnerID:      claims.UserID,
		Name:         input.Name,
		AltNames:     emptyIfNil(input.AltNames),
		Slug:         slug.From(input.Name),
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		CoverURL:     input.CoverURL,
		Lifecycle:    input.Lifecycle,
		Moderation:   moderation,
	}

	if err := service.repo.Create(context, entity, contributorIDs, tagIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.String("title_id", entity.ID),
		slog.String("owner_id", entity.OwnerID),
		slog.String("moderation", string(entity.Moderation)),
	)

	return service.repo.FindByID(context, entity.ID)
}

/*
GetTitle retrieves a single title by ID.

Description: Titles outside approved moderation are only visible to their
owner or an admin; everyone else receives NOT_FOUND rather than a hint that
the record exists.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous callers)
  - id: string (UUID)

Returns:
  - *Title: The hydrated domain entity
  - error: NOT_FOUND if missing, soft-deleted, or not visible
*/
func (service *Service) GetTitle(context context.Context, claims *sec.AuthClaims, id string) (*Title, error) {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.gateVisibility(claims, entity)
}

// GetTitleBySlug retrieves a single title by its SEO identifier,
// with the same visibility gating as [Service.GetTitle].
func (service *Service) GetTitleBySlug(context context.Context, claims *sec.AuthClaims, titleSlug string) (*Title, error) {
	entity, err := service.repo.FindBySlug(context, titleSlug)
	if err != nil {
		return nil, err
	}
	return service.gateVisibility(claims, entity)
}

/*
ListTitles returns a filtered, paginated public catalog page.

Description: Public listings always restrict to approved moderation; the
caller-supplied filter cannot widen that. Sort input maps through the
store's fixed whitelist.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Title: The page of matching titles
  - pagination.Meta: Page/limit/total/pageCount
  - error: Storage failures
*/
func (service *Service) ListTitles(context context.Context, filter Filter, params pagination.Params) ([]*Title, pagination.Meta, error) {
	filter.Moderation = []ModerationStatus{ModerationApproved}

	items, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListOwnTitles returns the acting principal's titles regardless of
// moderation status (uploader dashboard).
func (service *Service) ListOwnTitles(context context.Context, claims *sec.AuthClaims, params pagination.Params) ([]*Title, pagination.Meta, error) {
	if claims == nil {
		return nil, pagination.Meta{}, apperr.Unauthorized("Authentication required")
	}

	filter := Filter{OwnerID: claims.UserID, Sort: "latest"}
	items, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
UpdateTitle applies partial changes to an owned title.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Title: The updated entity
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) UpdateTitle(context context.Context, claims *sec.AuthClaims, id string, input UpdateInput) (*Title, error) {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeOwner(claims, entity.OwnerID); err != nil {
		return nil, err
	}

	// Apply partial updates
	if input.Name != nil {
		entity.Name = *input.Name
	}
	if input.AltNames != nil {
		entity.AltNames = input.AltNames
	}
	if input.Description != nil {
		entity.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		entity.ThumbnailURL = *input.ThumbnailURL
	}
	if input.CoverURL != nil {
		entity.CoverURL = *input.CoverURL
	}
	if input.Lifecycle != "" {
		entity.Lifecycle = input.Lifecycle
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, entity.Name)
	validator.MaxLen(FieldName, entity.Name, 255)
	validator.Custom(FieldLifecycle, !entity.Lifecycle.IsValid(), "Unknown lifecycle status")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Resolve relation names only when supplied; nil leaves them untouched.
	var contributorIDs, tagIDs []string
	if input.ContributorNames != nil {
		contributorIDs, err = service.contributors.EnsureByName(context, input.ContributorNames)
		if err != nil {
			return nil, err
		}
	}
	if input.TagNames != nil {
		tagIDs, err = service.tags.EnsureByName(context, input.TagNames)
		if err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, entity, contributorIDs, tagIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.String("title_id", id))

	return service.repo.FindByID(context, id)
}

/*
DeleteTitle soft-deletes an owned title.

Description: Engagement and progress records referencing the title's
chapters are left in place; readers tolerate the dangling references.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) DeleteTitle(context context.Context, claims *sec.AuthClaims, id string) error {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := sec.AuthorizeOwner(claims, entity.OwnerID); err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted",
		slog.String("title_id", id),
		slog.String("actor_id", claims.UserID),
	)

	return nil
}

/*
ModerateTitle sets the moderation status of a title. Admin only.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string (UUID)
  - status: ModerationStatus

Returns:
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) ModerateTitle(context context.Context, claims *sec.AuthClaims, id string, status ModerationStatus) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if sec.UserRole(claims.Role) != sec.RoleAdmin {
		return apperr.Forbidden("Admin role required")
	}
	if !status.IsValid() {
		return validate.RequiredError(FieldModeration, "Unknown moderation status")
	}

	if err := service.repo.SetModeration(context, id, status); err != nil {
		return err
	}

	service.logger.Info("title_moderated",
		slog.String("title_id", id),
		slog.String("status", string(status)),
	)

	return nil
}

// # Internal Helpers

// gateVisibility hides unapproved titles from everyone but owner/admin.
func (service *Service) gateVisibility(claims *sec.AuthClaims, entity *Title) (*Title, error) {
	if entity.Moderation == ModerationApproved {
		return entity, nil
	}
	if err := sec.AuthorizeOwner(claims, entity.OwnerID); err != nil {
		return nil, apperr.NotFound("Title")
	}
	return entity, nil
}

// emptyIfNil normalises a nil slice to an empty one for storage and JSON.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
