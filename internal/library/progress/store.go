// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress

import "context"

// Repository defines the data access contract for reading progress.
type Repository interface {

	/*
		Upsert writes the progress record for its (user, chapter) pair,
		replacing the pages, percent, completion flag and activity timestamp
		when a record already exists. Saving twice yields one record.

		Parameters:
		  - context: context.Context
		  - record: *Record (all fields populated by the service)

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, record *Record) error

	/*
		FindByChapter returns the user's record for one chapter.

		Returns:
		  - *Record: The record
		  - error: NOT_FOUND when the user never saved progress on the chapter
	*/
	FindByChapter(context context.Context, userID, chapterID string) (*Record, error)

	/*
		ListByTitle returns all of the user's records for a title, most
		recently active first. An empty slice is a normal result.
	*/
	ListByTitle(context context.Context, userID, titleID string) ([]*Record, error)
}
