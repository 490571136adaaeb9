// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// chapterColumns lists the core columns selected by every read.
func chapterColumns() string {
	return strings.Join(schema.CoreChapter.Columns(), ", ")
}

// scanChapter reads one row in [chapterColumns] order.
func scanChapter(row pgx.Row, extra ...any) (*Chapter, error) {
	c := &Chapter{}
	dest := []any{
		&c.ID, &c.TitleID, &c.OwnerID, &c.Name, &c.Slug, &c.Ordinal,
		&c.Pages, &c.ImageCount, &c.ViewCount, &c.PublishStatus,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return c, nil
}

// # Repository Implementation

func (repository *postgresRepository) ListByTitle(context context.Context, titleID string, filter Filter, limit, offset int) ([]*Chapter, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $%d AND %s IS NULL
	`, chapterColumns(), schema.CoreChapter.Table, schema.CoreChapter.TitleID, argID, schema.CoreChapter.DeletedAt))
	args = append(args, titleID)
	argID++

	if len(filter.PublishStatus) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.CoreChapter.PublishStatus, argID))
		args = append(args, filter.PublishStatus)
		argID++
	}

	// Sort input maps through this fixed whitelist.
	sort := schema.CoreChapter.Ordinal // default: reading order
	switch filter.Sort {
	case "latest":
		sort = schema.CoreChapter.PublishedAt
	case "popular":
		sort = schema.CoreChapter.ViewCount
	case "ordinal":
		sort = schema.CoreChapter.Ordinal
	}

	sortDir := "ASC"
	if strings.ToLower(filter.SortDir) == "desc" || filter.Sort == "latest" || filter.Sort == "popular" {
		sortDir = "DESC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s NULLS LAST, %s DESC", sort, sortDir, schema.CoreChapter.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := make([]*Chapter, 0)
	var totalCount int

	for rows.Next() {
		c, err := scanChapter(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, totalCount, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, chapterColumns(), schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreChapter.DeletedAt)

	c, err := scanChapter(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_chapter_by_id")
	}
	return c, nil
}

func (repository *postgresRepository) Create(context context.Context, chapter *Chapter) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_chapter")
	}
	defer transaction.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.TitleID, schema.CoreChapter.OwnerID,
		schema.CoreChapter.Name, schema.CoreChapter.Slug, schema.CoreChapter.Ordinal,
		schema.CoreChapter.Pages, schema.CoreChapter.ImageCount,
		schema.CoreChapter.PublishStatus, schema.CoreChapter.PublishedAt,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	err = transaction.QueryRow(context, insertQuery,
		chapter.ID, chapter.TitleID, chapter.OwnerID, chapter.Name,
		chapter.Slug, chapter.Ordinal, chapter.Pages, chapter.ImageCount,
		chapter.PublishStatus, chapter.PublishedAt,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		// Duplicate (titleid, ordinal) trips the partial unique index and
		// surfaces as CONFLICT here, before any counter moves.
		return dberr.Wrap(err, "insert_chapter")
	}

	// Paired counter write: chapterCount advances with the fact, and
	// lastChapterAt only moves forward, never backward. GREATEST ignores
	// NULL arguments, so a draft insert ($2 NULL) leaves the column alone
	// and a title with no published chapters stays NULL.
	counterQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = %s + 1,
			%s = GREATEST(%s, $2)
		WHERE %s = $1
	`,
		schema.CoreTitle.Table,
		schema.CoreTitle.ChapterCount, schema.CoreTitle.ChapterCount,
		schema.CoreTitle.LastChapterAt, schema.CoreTitle.LastChapterAt,
		schema.CoreTitle.ID,
	)
	if _, err := transaction.Exec(context, counterQuery, chapter.TitleID, chapter.PublishedAt); err != nil {
		return dberr.Wrap(err, "bump_title_chapter_count")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_chapter")
	}
	return nil
}

func (repository *postgresRepository) Update(context context.Context, chapter *Chapter) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_chapter")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = now()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Name, schema.CoreChapter.Pages, schema.CoreChapter.ImageCount,
		schema.CoreChapter.PublishStatus, schema.CoreChapter.PublishedAt,
		schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID, schema.CoreChapter.DeletedAt,
	)

	commandTag, err := transaction.Exec(context, query,
		chapter.ID, chapter.Name, chapter.Pages, chapter.ImageCount,
		chapter.PublishStatus, chapter.PublishedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_chapter")
	}

	// Paired counter write: a draft going published must advance the owning
	// title's lastChapterAt in the same transaction. GREATEST ignores NULLs,
	// so updates that carry no publish time leave the column untouched.
	counterQuery := fmt.Sprintf("UPDATE %s SET %s = GREATEST(%s, $2) WHERE %s = $1",
		schema.CoreTitle.Table,
		schema.CoreTitle.LastChapterAt, schema.CoreTitle.LastChapterAt,
		schema.CoreTitle.ID,
	)
	if _, err := transaction.Exec(context, counterQuery, chapter.TitleID, chapter.PublishedAt); err != nil {
		return dberr.Wrap(err, "advance_title_last_chapter")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_chapter")
	}
	return nil
}

func (repository *postgresRepository) SoftDelete(context context.Context, id, titleID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_chapter")
	}
	defer transaction.Rollback(context)

	deleteQuery := fmt.Sprintf("UPDATE %s SET %s = now() WHERE %s = $1 AND %s IS NULL",
		schema.CoreChapter.Table, schema.CoreChapter.DeletedAt,
		schema.CoreChapter.ID, schema.CoreChapter.DeletedAt)

	commandTag, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_chapter")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_chapter")
	}

	// Paired counter write. lastChapterAt keeps its old value even when the
	// deleted chapter was the newest; accepted staleness.
	counterQuery := fmt.Sprintf("UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1",
		schema.CoreTitle.Table,
		schema.CoreTitle.ChapterCount, schema.CoreTitle.ChapterCount,
		schema.CoreTitle.ID)

	if _, err := transaction.Exec(context, counterQuery, titleID); err != nil {
		return dberr.Wrap(err, "drop_title_chapter_count")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_delete_chapter")
	}
	return nil
}

func (repository *postgresRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	// Atomic in-place increment. Never read-modify-write.
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $2 WHERE %s = $1",
		schema.CoreChapter.Table, schema.CoreChapter.ViewCount, schema.CoreChapter.ViewCount,
		schema.CoreChapter.ID)

	if _, err := repository.pool.Exec(context, query, id, delta); err != nil {
		return dberr.Wrap(err, "increment_chapter_views")
	}
	return nil
}

func (repository *postgresRepository) InsertViewAudit(context context.Context, id, chapterID, titleID, userID string, viewedAt time.Time) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.LibraryChapterView.Table,
		schema.LibraryChapterView.ID, schema.LibraryChapterView.ChapterID,
		schema.LibraryChapterView.TitleID, schema.LibraryChapterView.UserID,
		schema.LibraryChapterView.ViewedAt)

	if _, err := repository.pool.Exec(context, query, id, chapterID, titleID, userID, viewedAt); err != nil {
		return dberr.Wrap(err, "insert_chapter_view")
	}
	return nil
}
