// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

// Package contributor manages credited creators (authors, artists).
//
// Contributor identity keys on the unique display name: records are created
// implicitly on first reference during title creation/update. The slug is a
// denormalized display field only, never an identity key, so slug collisions
// are structurally impossible to matter here.
package contributor

import "time"

// Contributor represents a credited creator of one or more titles.
type Contributor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // Unique identity key
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"-"`
}
