// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package chapter manages the ordered installments of a title.

Each chapter carries an exact-decimal ordinal, an ordered sequence of page
image references, and a view counter. Chapter facts and the owning title's
denormalized counters (chapterCount, lastChapterAt) move together in one
transaction; view recording is a set of independent paired writes.
*/
package chapter

import "time"

// # Domain Enums

// PublishStatus represents the visibility state of a chapter.
type PublishStatus string

const (
	// PublishDraft is visible to the owner and admins only.
	PublishDraft PublishStatus = "draft"

	// PublishPublished is publicly readable.
	PublishPublished PublishStatus = "published"
)

// IsValid reports whether s is a recognised [PublishStatus] value.
func (s PublishStatus) IsValid() bool {
	switch s {
	case PublishDraft, PublishPublished:
		return true
	}
	return false
}

// # Core Entity

// Chapter is one ordered installment of a title.
type Chapter struct {
	ID      string `json:"id"`
	TitleID string `json:"title_id"` // Immutable after creation
	OwnerID string `json:"owner_id"`

	Name    string  `json:"name"`
	Slug    string  `json:"slug"` // Derived: {titleSlug}-ch-{ordinal}
	Ordinal Ordinal `json:"ordinal"`

	// Pages is the ordered sequence of page image URLs.
	Pages      []string `json:"pages"`
	ImageCount int      `json:"image_count"` // == len(Pages), denormalized

	ViewCount int64 `json:"view_count"`

	PublishStatus PublishStatus `json:"publish_status"`
	PublishedAt   *time.Time    `json:"published_at"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// Summary is the lightweight chapter shape embedded in discovery results.
type Summary struct {
	ID          string     `json:"id"`
	TitleID     string     `json:"title_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Ordinal     Ordinal    `json:"ordinal"`
	PublishedAt *time.Time `json:"published_at"`
}

// # Search & Filtering

// Filter holds the parameters for a chapter list query.
type Filter struct {
	// PublishStatus is forced by the service for non-owner callers.
	PublishStatus []PublishStatus `json:"-"`

	Sort    string `json:"sort,omitempty"`     // ordinal, latest, popular
	SortDir string `json:"sort_dir,omitempty"` // "asc" or "desc"
}

// # Field Identifiers

const (
	FieldTitleID = "title_id"
	FieldName    = "name"
	FieldOrdinal = "ordinal"
	FieldPages   = "pages"
	FieldStatus  = "publish_status"
)
