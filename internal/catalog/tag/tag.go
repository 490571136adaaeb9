// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

// Package tag manages the categorical labels (genres, themes) attached to
// titles.
//
// Like contributors, tag identity keys on the unique display name with
// create-if-absent semantics; the slug is denormalized display only.
package tag

import "time"

// Tag represents a categorical label applied to titles.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // Unique identity key
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"-"`
}
