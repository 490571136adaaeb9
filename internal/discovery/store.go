// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package discovery

import "context"

// Repository defines the data access contract for the discovery feeds.
type Repository interface {

	/*
		Trending returns approved titles ordered by view count descending,
		breaking ties on average rating.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []*TitleCard: The feed entries
		  - error: Storage failures
	*/
	Trending(context context.Context, limit int) ([]*TitleCard, error)

	/*
		RecentlyUpdated returns approved titles that have at least one
		published chapter, ordered by last chapter time descending, each paired
		with its latest published chapter.
	*/
	RecentlyUpdated(context context.Context, limit int) ([]*UpdatedEntry, error)

	/*
		LatestReadPerTitle returns the user's most recent reading activity,
		collapsed to one entry per title and ordered newest first. Entries for
		deleted titles carry a nil title card instead of being dropped.
	*/
	LatestReadPerTitle(context context.Context, userID string, limit int) ([]*ContinueEntry, error)

	/*
		ApprovedTitleIDs returns the ids of every approved, non-deleted title.
	*/
	ApprovedTitleIDs(context context.Context) ([]string, error)

	/*
		TitleCardsByIDs returns cards for the given ids. Missing ids are
		silently skipped; order is not guaranteed.
	*/
	TitleCardsByIDs(context context.Context, ids []string) ([]*TitleCard, error)
}
