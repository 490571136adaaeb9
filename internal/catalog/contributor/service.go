// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package contributor

import (
	"context"
	"log/slog"
)

// Service orchestrates the business logic for contributors.
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
// It satisfies the title service's ContributorResolver contract.
func (service *Service) EnsureByName(context context.Context, names []string) ([]string, error) {
	return service.repo.EnsureByName(context, names)
}

// ListContributors returns a paginated, name-ordered contributor page.
func (service *Service) ListContributors(context context.Context, limit, offset int) ([]*Contributor, int, error) {
	return service.repo.List(context, limit, offset)
}

// GetContributorBySlug returns the contributor matching the display slug.
func (service *Service) GetContributorBySlug(context context.Context, slug string) (*Contributor, error) {
	return service.repo.FindBySlug(context, slug)
}
