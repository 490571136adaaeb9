// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package bookmark

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed bookmark store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Add(context context.Context, bookmark *Bookmark) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_add_bookmark")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.ID, schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID,
		schema.LibraryBookmark.CreatedAt,
	)

	// A concurrent duplicate trips the (userid, titleid) unique constraint
	// and surfaces as CONFLICT here, before any counter moves.
	err = transaction.QueryRow(context, query,
		bookmark.ID, bookmark.UserID, bookmark.TitleID,
	).Scan(&bookmark.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "add_bookmark")
	}

	// Paired counter write: bookmarkCount advances with the fact.
	counterQuery := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.CoreTitle.Table,
		schema.CoreTitle.BookmarkCount, schema.CoreTitle.BookmarkCount,
		schema.CoreTitle.ID)
	if _, err := transaction.Exec(context, counterQuery, bookmark.TitleID); err != nil {
		return dberr.Wrap(err, "bump_title_bookmark_count")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_add_bookmark")
	}
	return nil
}

func (repository *postgresRepository) Remove(context context.Context, userID, titleID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_remove_bookmark")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID)

	commandTag, err := transaction.Exec(context, query, userID, titleID)
	if err != nil {
		return dberr.Wrap(err, "remove_bookmark")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "remove_bookmark")
	}

	// Paired counter write; an absent pair rolled back above never reaches it.
	counterQuery := fmt.Sprintf("UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1",
		schema.CoreTitle.Table,
		schema.CoreTitle.BookmarkCount, schema.CoreTitle.BookmarkCount,
		schema.CoreTitle.ID)
	if _, err := transaction.Exec(context, counterQuery, titleID); err != nil {
		return dberr.Wrap(err, "drop_title_bookmark_count")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_remove_bookmark")
	}
	return nil
}

func (repository *postgresRepository) Toggle(context context.Context, id, userID, titleID string) (bool, error) {
	// Single-statement toggle: the insert attempt, the compensating delete,
	// and the paired bookmarkCount adjustment execute atomically, so there
	// is no check-then-act window for a second concurrent toggle to slip
	// through and the counter moves exactly with the fact.
	query := fmt.Sprintf(`
		WITH attempt AS (
			INSERT INTO %s (%s, %s, %s)
			VALUES ($1, $2, $3)
			ON CONFLICT (%s, %s) DO NOTHING
			RETURNING %s
		), removal AS (
			DELETE FROM %s
			WHERE %s = $2 AND %s = $3
			  AND NOT EXISTS (SELECT 1 FROM attempt)
			RETURNING %s
		), adjustment AS (
			UPDATE %s SET %s = GREATEST(%s + CASE
				WHEN EXISTS (SELECT 1 FROM attempt) THEN 1
				WHEN EXISTS (SELECT 1 FROM removal) THEN -1
				ELSE 0 END, 0)
			WHERE %s = $3
		)
		SELECT EXISTS (SELECT 1 FROM attempt) AS added
	`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.ID, schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID,
		schema.LibraryBookmark.ID,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID,
		schema.LibraryBookmark.ID,
		schema.CoreTitle.Table,
		schema.CoreTitle.BookmarkCount, schema.CoreTitle.BookmarkCount,
		schema.CoreTitle.ID,
	)

	var added bool
	if err := repository.pool.QueryRow(context, query, id, userID, titleID).Scan(&added); err != nil {
		return false, dberr.Wrap(err, "toggle_bookmark")
	}
	return added, nil
}

func (repository *postgresRepository) Exists(context context.Context, userID, titleID string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.TitleID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "bookmark_exists")
	}
	return exists, nil
}

func (repository *postgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error) {
	// LEFT JOIN keeps orphaned bookmarks (deleted titles) in the result
	// with null title fields rather than failing or hiding them.
	query := fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s,
			t.%s, t.%s, t.%s, t.%s, t.%s,
			COUNT(*) OVER() AS total_count
		FROM %s b
		LEFT JOIN %s t ON t.%s = b.%s AND t.%s IS NULL
		WHERE b.%s = $1
		ORDER BY b.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.LibraryBookmark.ID, schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.TitleID, schema.LibraryBookmark.CreatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Slug,
		schema.CoreTitle.ThumbnailURL, schema.CoreTitle.ChapterCount,
		schema.LibraryBookmark.Table,
		schema.CoreTitle.Table, schema.CoreTitle.ID, schema.LibraryBookmark.TitleID, schema.CoreTitle.DeletedAt,
		schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_bookmarks")
	}
	defer rows.Close()

	bookmarks := make([]*Bookmark, 0)
	var totalCount int

	for rows.Next() {
		b := &Bookmark{}
		var titleID, titleName, titleSlug, thumbnailURL *string
		var chapterCount *int

		err := rows.Scan(
			&b.ID, &b.UserID, &b.TitleID, &b.CreatedAt,
			&titleID, &titleName, &titleSlug, &thumbnailURL, &chapterCount,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_bookmark")
		}

		if titleID != nil {
			b.Title = &TitleSummary{
				ID:           *titleID,
				Name:         *titleName,
				Slug:         *titleSlug,
				ThumbnailURL: *thumbnailURL,
				ChapterCount: *chapterCount,
			}
		}

		bookmarks = append(bookmarks, b)
	}

	return bookmarks, totalCount, nil
}
