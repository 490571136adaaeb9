// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package contributor

import "context"

// Repository defines the data access contract for the contributor domain.
type Repository interface {

	/*
		EnsureByName resolves display names to contributor IDs, creating any
		that do not exist yet (create-if-absent keyed by unique name).

		Parameters:
		  - context: context.Context
		  - names: []string (Display names as supplied by the caller)

		Returns:
		  - []string: Contributor UUIDs in input order
		  - error: Storage failures
	*/
	EnsureByName(context context.Context, names []string) ([]string, error)

	// List returns contributors ordered by name with the total count.
	List(context context.Context, limit, offset int) ([]*Contributor, int, error)

	// FindBySlug returns the contributor matching the display slug.
	FindBySlug(context context.Context, slug string) (*Contributor, error)
}
