// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package bookmark tracks each user's saved-for-later markers on titles.

At most one bookmark exists per (user, title) pair; the uniqueness is
enforced by a store constraint at write time, not by a read-then-check. The
toggle operation is a single atomic SQL statement, so two concurrent toggles
from the same user serialize at the store instead of racing.
*/
package bookmark

import "time"

// Bookmark is a user's saved marker on a title.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TitleID   string    `json:"title_id"`
	CreatedAt time.Time `json:"created_at"`

	// Title is the display summary of the bookmarked title. Nil when the
	// title has been deleted since; callers tolerate the orphan.
	Title *TitleSummary `json:"title,omitempty"`
}

// TitleSummary is the lightweight title shape embedded in bookmark listings.
type TitleSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChapterCount int    `json:"chapter_count"`
}
