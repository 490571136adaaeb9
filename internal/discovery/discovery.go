// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package discovery serves the browse feeds: trending, recently updated,
continue reading and random sampling. Feeds only ever surface approved,
non-deleted titles and are intentionally lightweight; callers follow up with
the catalog endpoints for full detail.
*/
package discovery

import (
	"time"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
)

// TitleCard is the compact title projection used by every feed.
type TitleCard struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	ThumbnailURL  string     `json:"thumbnail_url"`
	Lifecycle     string     `json:"lifecycle_status"`
	ChapterCount  int        `json:"chapter_count"`
	ViewCount     int64      `json:"view_count"`
	AverageRating float64    `json:"average_rating"`
	LastChapterAt *time.Time `json:"last_chapter_at"`
}

// UpdatedEntry pairs a title with the chapter whose publication put it in the
// recently-updated feed.
type UpdatedEntry struct {
	Title         *TitleCard       `json:"title"`
	LatestChapter *chapter.Summary `json:"latest_chapter"`
}

// ContinueEntry is one title the user has unfinished reading activity on.
// Title is nil when the title has since been deleted.
type ContinueEntry struct {
	TitleID        string     `json:"title_id"`
	ChapterID      string     `json:"chapter_id"`
	CurrentPage    int        `json:"current_page"`
	Percent        int        `json:"progress_percent"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	Title          *TitleCard `json:"title"`
}
