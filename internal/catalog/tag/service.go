// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package tag

import (
	"context"
	"log/slog"
)

// Service orchestrates the business logic for tags.
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

// EnsureByName resolves display names to IDs, creating missing records.
// It satisfies the title service's TagResolver contract.
func (service *Service) EnsureByName(context context.Context, names []string) ([]string, error) {
	return service.repo.EnsureByName(context, names)
}

// ListTags returns all tags ordered by name.
func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.List(context)
}

// GetTagBySlug returns the tag matching the display slug.
func (service *Service) GetTagBySlug(context context.Context, slug string) (*Tag, error) {
	return service.repo.FindBySlug(context, slug)
}
