// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package bookmark

import "context"

// Repository defines the data access contract for bookmarks.
type Repository interface {

	/*
		Add inserts a bookmark for the (user, title) pair and advances the
		title's bookmarkCount in the same transaction.

		Parameters:
		  - context: context.Context
		  - bookmark: *Bookmark (ID, UserID, TitleID)

		Returns:
		  - error: CONFLICT when the pair is already bookmarked; a conflict
		    leaves the counter untouched
	*/
	Add(context context.Context, bookmark *Bookmark) error

	/*
		Remove deletes the bookmark for the (user, title) pair and drops the
		title's bookmarkCount in the same transaction.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - titleID: string

		Returns:
		  - error: NOT_FOUND when no bookmark exists for the pair; the miss
		    rolls back before any counter movement
	*/
	Remove(context context.Context, userID, titleID string) error

	/*
		Toggle flips the bookmark state for the (user, title) pair in one
		atomic statement: insert wins when absent, delete wins when present,
		and the title's bookmarkCount adjusts in the same statement.
		Concurrent toggles from the same user serialize at the store.

		Parameters:
		  - context: context.Context
		  - id: string (UUID used if an insert happens)
		  - userID: string
		  - titleID: string

		Returns:
		  - bool: true when the pair is now bookmarked
		  - error: Storage failures
	*/
	Toggle(context context.Context, id, userID, titleID string) (bool, error)

	/*
		Exists reports whether the (user, title) pair is bookmarked. A miss is
		a normal false result, never an error.
	*/
	Exists(context context.Context, userID, titleID string) (bool, error)

	/*
		ListByUser returns the user's bookmarks newest first, each enriched
		with a title summary when the title still exists.

		Returns:
		  - []*Bookmark: The page of bookmarks
		  - int: Total bookmark count for the user
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error)
}
