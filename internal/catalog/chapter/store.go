// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"context"
	"time"
)

// # Chapter Data Access

// Repository defines the data access contract for the chapter domain.
type Repository interface {

	/*
		ListByTitle returns a filtered, paginated slice of a title's chapters
		and the total count.

		Parameters:
		  - context: context.Context
		  - titleID: string (Owning title UUID)
		  - filter: Filter (Publish status and sorting)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Matching chapters
		  - int: Total count for the title/filter
		  - error: Database retrieval failures
	*/
	ListByTitle(context context.Context, titleID string, filter Filter, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns the chapter with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: The hydrated domain entity
		  - error: NOT_FOUND if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		Create persists a new chapter and updates the owning title's counters
		in a single transaction.

		Description: The insert and the paired counter write (chapterCount+1,
		lastChapterAt advanced when the new publish time is the most recent)
		commit or roll back together. A duplicate ordinal under the same title
		violates the uniqueness constraint and surfaces as CONFLICT.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (Metadata, pages, and publish state)

		Returns:
		  - error: CONFLICT on duplicate ordinal; other storage failures
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		Update persists changes to a chapter's mutable fields (name, pages,
		publish state). TitleID and Ordinal are immutable.

		Description: The update and the owning title's lastChapterAt advance
		commit in one transaction, so a draft transitioning to published moves
		the title's recency marker with the fact. The marker only moves
		forward, never backward.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (Target ID and modified attributes)

		Returns:
		  - error: NOT_FOUND if missing; other storage failures
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		SoftDelete marks a chapter deleted and decrements the owning title's
		chapterCount in the same transaction.

		Description: lastChapterAt is intentionally NOT recomputed to the next
		most recent chapter; the stale value is accepted.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - titleID: string (Owning title UUID)

		Returns:
		  - error: NOT_FOUND if missing
	*/
	SoftDelete(context context.Context, id, titleID string) error

	/*
		IncrementViewCount atomically adds delta to the chapter's view counter.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - delta: int64

		Returns:
		  - error: Atomic bump failure
	*/
	IncrementViewCount(context context.Context, id string, delta int64) error

	/*
		InsertViewAudit appends a chapter-view audit row for an authenticated
		viewer. Anonymous views are counted but never audited.

		Parameters:
		  - context: context.Context
		  - id: string (Audit row UUID)
		  - chapterID: string
		  - titleID: string
		  - userID: string
		  - viewedAt: time.Time

		Returns:
		  - error: Storage failures
	*/
	InsertViewAudit(context context.Context, id, chapterID, titleID, userID string, viewedAt time.Time) error
}
