// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package title

import "context"

// # Title Data Access

// Repository defines the data access contract for the title domain.
type Repository interface {

	/*
		List returns a filtered, paginated slice of titles and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for lifecycle, tags, search, etc.)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Title: Slice of matching publication records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	/*
		FindByID returns the title with the given ID, relations hydrated.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Title: The hydrated domain entity
		  - error: NOT_FOUND if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Title, error)

	/*
		FindBySlug returns the title matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Title: The hydrated domain entity
		  - error: NOT_FOUND if missing or soft-deleted
	*/
	FindBySlug(context context.Context, slug string) (*Title, error)

	/*
		Create persists a new title and its contributor/tag join rows in one
		transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title (Metadata and initial state)
		  - contributorIDs: []string (Resolved contributor UUIDs)
		  - tagIDs: []string (Resolved tag UUIDs)

		Returns:
		  - error: CONFLICT on duplicate slug; other storage failures
	*/
	Create(context context.Context, title *Title, contributorIDs, tagIDs []string) error

	/*
		Update persists changes to an existing title's mutable fields. When
		contributorIDs or tagIDs is non-nil the corresponding join rows are
		replaced in the same transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title (Target ID and modified attributes)
		  - contributorIDs: []string (nil = leave relations untouched)
		  - tagIDs: []string (nil = leave relations untouched)

		Returns:
		  - error: NOT_FOUND if missing; other storage failures
	*/
	Update(context context.Context, title *Title, contributorIDs, tagIDs []string) error

	/*
		SetModeration updates the moderation status of a title.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - status: ModerationStatus

		Returns:
		  - error: NOT_FOUND if missing
	*/
	SetModeration(context context.Context, id string, status ModerationStatus) error

	/*
		SoftDelete marks a title as deleted without physical row removal.
		Engagement records referencing its chapters are left untouched.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: NOT_FOUND if missing
	*/
	SoftDelete(context context.Context, id string) error

	/*
		IncrementViewCount atomically adds delta to the title's view counter.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - delta: int64 (Amount to add)

		Returns:
		  - error: Atomic bump failure
	*/
	IncrementViewCount(context context.Context, id string, delta int64) error
}
