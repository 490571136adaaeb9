// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package tag

import "context"

// Repository defines the data access contract for the tag domain.
type Repository interface {

	/*
		EnsureByName resolves display names to tag IDs, creating any that do
		not exist yet (create-if-absent keyed by unique name).

		Parameters:
		  - context: context.Context
		  - names: []string

		Returns:
		  - []string: Tag UUIDs in input order
		  - error: Storage failures
	*/
	EnsureByName(context context.Context, names []string) ([]string, error)

	// List returns all tags ordered by name.
	List(context context.Context) ([]*Tag, error)

	// FindBySlug returns the tag matching the display slug.
	FindBySlug(context context.Context, slug string) (*Tag, error)
}
