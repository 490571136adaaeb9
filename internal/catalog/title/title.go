// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package title defines the central aggregate of the Hondana catalog.

A Title is a serialized publication (manga, manhwa, webtoon) carrying
metadata, denormalized engagement counters, and links to its contributors
and tags.

Core Responsibility:

  - Catalog: Lifecycle statuses (Ongoing, Completed) and moderation gating.
  - Credits: Many-to-many relations to contributors and tags, created
    implicitly by unique display name on first reference.
  - Analytics: Denormalized counters (chapterCount, viewCount, averageRating,
    lastChapterAt) kept coherent by paired writes adjacent to fact writes.

This package acts as the source of truth for publication-level data models.
*/
package title

import "time"

// # Domain Enums

// LifecycleStatus represents the publication status of a title.
type LifecycleStatus string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing LifecycleStatus = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted LifecycleStatus = "completed"

	// StatusHiatus indicates the publication is paused indefinitely.
	StatusHiatus LifecycleStatus = "hiatus"

	// StatusCancelled indicates the publication has been permanently discontinued.
	StatusCancelled LifecycleStatus = "cancelled"
)

// IsValid reports whether s is a recognised [LifecycleStatus] value.
func (s LifecycleStatus) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// ModerationStatus represents whether a title is publicly visible.
type ModerationStatus string

const (
	// ModerationPending awaits review; hidden from public listings.
	ModerationPending ModerationStatus = "pending"

	// ModerationApproved is publicly visible.
	ModerationApproved ModerationStatus = "approved"

	// ModerationRejected failed review; hidden from public listings.
	ModerationRejected ModerationStatus = "rejected"
)

// IsValid reports whether s is a recognised [ModerationStatus] value.
func (s ModerationStatus) IsValid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// # Core Entity

// Title is the central aggregate of the Hondana catalog.
type Title struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Name         string   `json:"name"`
	AltNames     []string `json:"alt_names"` // Alternative/romanised names
	Slug         string   `json:"slug"`      // URL-safe identifier, derived from Name
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
	CoverURL     string   `json:"cover_url"`

	Lifecycle  LifecycleStatus  `json:"lifecycle_status"`
	Moderation ModerationStatus `json:"moderation_status"`

	// Relations, hydrated on detail reads.
	Contributors []Credit `json:"contributors,omitempty"`
	Tags         []TagRef `json:"tags,omitempty"`

	// # Denormalized Counters
	// Updated by paired writes adjacent to the fact writes that change them,
	// never by read-modify-write.
	ChapterCount  int        `json:"chapter_count"`
	ViewCount     int64      `json:"view_count"`
	AverageRating float64    `json:"average_rating"`
	RatingCount   int        `json:"rating_count"`
	BookmarkCount int64      `json:"bookmark_count"`
	LastChapterAt *time.Time `json:"last_chapter_at"` // nil until the first chapter lands

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// Credit represents a contributor credited on a title.
type Credit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Credit string `json:"credit,omitempty"` // author, artist
}

// TagRef represents a tag attached to a title.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered title list query.
type Filter struct {
	Query           string            `json:"q,omitempty"` // Matches name and alt names
	Lifecycle       []LifecycleStatus `json:"lifecycle_status,omitempty"`
	ContributorSlug string            `json:"contributor,omitempty"`
	TagSlug         string            `json:"tag,omitempty"`
	OwnerID         string            `json:"owner_id,omitempty"`

	// Moderation is forced to approved-only by the service for public callers;
	// the store never trusts caller input here.
	Moderation []ModerationStatus `json:"-"`

	Sort    string `json:"sort,omitempty"`     // latest, updated, popular, rating, name
	SortDir string `json:"sort_dir,omitempty"` // "asc" or "desc"
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldAltNames     = "alt_names"
	FieldDescription  = "description"
	FieldLifecycle    = "lifecycle_status"
	FieldModeration   = "moderation_status"
	FieldContributors = "contributor_names"
	FieldTags         = "tag_names"
)
