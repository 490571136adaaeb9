// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress

import "time"

// Record captures how far a user has read into a single chapter. One record
// exists per (user, chapter) pair; repeated saves update it in place.
type Record struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ChapterID string `json:"chapter_id"`

	// TitleID is denormalized from the chapter so per-title queries never
	// need to join through soft-deleted chapters.
	TitleID string `json:"title_id"`

	CurrentPage     int       `json:"current_page"`
	TotalPages      int       `json:"total_pages"`
	ProgressPercent int       `json:"progress_percent"`
	IsComplete      bool      `json:"is_complete"`
	LastActivityAt  time.Time `json:"last_activity_at"`
}

// TitleProgress summarizes a user's reading state across a whole title.
type TitleProgress struct {
	TitleID string `json:"title_id"`

	// LastRead is the most recently touched chapter record for the title.
	LastRead *Record `json:"last_read"`

	// ReadChapters counts chapters the user finished.
	ReadChapters int `json:"read_chapters"`

	// TitleProgressPercent is read chapters over the title's chapter count,
	// rounded to the nearest whole percent. Zero when the title has no
	// chapters.
	TitleProgressPercent int `json:"title_progress_percent"`
}
