// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package discovery

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// Service orchestrates the discovery feeds.
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

// clampLimit normalizes a caller-supplied feed size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

// # Feed Operations

// Trending returns the most viewed approved titles.
func (service *Service) Trending(context context.Context, limit int) ([]*TitleCard, error) {
	return service.repo.Trending(context, clampLimit(limit))
}

// RecentlyUpdated returns approved titles by freshness of their latest
// published chapter.
func (service *Service) RecentlyUpdated(context context.Context, limit int) ([]*UpdatedEntry, error) {
	return service.repo.RecentlyUpdated(context, clampLimit(limit))
}

/*
ContinueReading returns the user's reading activity collapsed to one entry
per title, newest first.

Description: A user who read three chapters across two titles sees exactly two
entries, each pointing at the last chapter they touched in that title.
Activity on deleted titles is kept with a nil title card.

Returns:
  - []*ContinueEntry: The feed entries
  - error: UNAUTHORIZED for anonymous callers; storage failures
*/
func (service *Service) ContinueReading(context context.Context, claims *sec.AuthClaims, limit int) ([]*ContinueEntry, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.repo.LatestReadPerTitle(context, claims.UserID, clampLimit(limit))
}

/*
RandomSample returns a uniformly random selection of approved titles without
repeats.

Description: The candidate id set is shuffled in memory and the prefix is
hydrated into cards, so a pool smaller than the requested limit simply returns
the whole pool in random order.
*/
func (service *Service) RandomSample(context context.Context, limit int) ([]*TitleCard, error) {
	limit = clampLimit(limit)

	ids, err := service.repo.ApprovedTitleIDs(context)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*TitleCard{}, nil
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	return service.repo.TitleCardsByIDs(context, ids)
}
