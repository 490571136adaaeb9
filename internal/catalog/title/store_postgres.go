// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
PostgreSQL implementation for the title domain's data access.

It leans on Postgres features to keep catalog reads single-round-trip:
  - JSON Aggregation: Contributors and tags arrive as JSON arrays built in SQL.
  - Window Functions: COUNT(*) OVER() returns the total without a second query.
  - ACID Transactions: Title rows and their junction tables move together.
*/

package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

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

// NewPostgresRepository constructs a PostgreSQL backed title store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// relationSubqueries builds the JSON aggregation sub-selects for contributors
// and tags, correlated against the aliased title row "t".
func relationSubqueries() string {
	return fmt.Sprintf(`
		COALESCE((
			SELECT json_agg(json_build_object('id', c.%s, 'name', c.%s, 'slug', c.%s, 'credit', tc.%s))
			FROM %s c
			JOIN %s tc ON c.%s = tc.%s
			WHERE tc.%s = t.%s
		), '[]') AS contributors,
		COALESCE((
			SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s, 'slug', g.%s))
			FROM %s g
			JOIN %s tg ON g.%s = tg.%s
			WHERE tg.%s = t.%s
		), '[]') AS tags`,
		schema.CoreContributor.ID, schema.CoreContributor.Name, schema.CoreContributor.Slug, schema.CoreTitleContributor.Credit,
		schema.CoreContributor.Table,
		schema.CoreTitleContributor.Table, schema.CoreContributor.ID, schema.CoreTitleContributor.ContributorID,
		schema.CoreTitleContributor.TitleID, schema.CoreTitle.ID,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Table,
		schema.CoreTitleTag.Table, schema.CoreTag.ID, schema.CoreTitleTag.TagID,
		schema.CoreTitleTag.TitleID, schema.CoreTitle.ID,
	)
}

// titleColumns lists the aliased core columns selected by every read.
func titleColumns() string {
	cols := schema.CoreTitle.Columns()
	aliased := make([]string, len(cols))
	for i, col := range cols {
		aliased[i] = "t." + col
	}
	return strings.Join(aliased, ", ")
}

// scanTitle reads one aliased row (core columns + two JSON relation blobs).
func scanTitle(row pgx.Row, extra ...any) (*Title, error) {
	t := &Title{}
	var contributorsJSON, tagsJSON []byte

	dest := []any{
		&t.ID, &t.OwnerID, &t.Name, &t.Slug, &t.AltNames, &t.Description,
		&t.ThumbnailURL, &t.CoverURL, &t.Lifecycle, &t.Moderation,
		&t.ChapterCount, &t.ViewCount, &t.AverageRating, &t.RatingCount,
		&t.BookmarkCount, &t.LastChapterAt, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	}
	dest = append(dest, extra...)
	dest = append(dest, &contributorsJSON, &tagsJSON)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(contributorsJSON, &t.Contributors); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal contributors: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &t.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}

	return t, nil
}

// # Repository Implementation

func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count,
			%s
		FROM %s t
		WHERE t.%s IS NULL
	`, titleColumns(), relationSubqueries(), schema.CoreTitle.Table, schema.CoreTitle.DeletedAt))

	// Moderation gating: the service decides which statuses the caller may
	// see; an empty slice means no restriction (internal callers only).
	if len(filter.Moderation) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.%s = ANY($%d)", schema.CoreTitle.ModerationStatus, argID))
		args = append(args, filter.Moderation)
		argID++
	}

	// Lifecycle status filtering
	if len(filter.Lifecycle) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.%s = ANY($%d)", schema.CoreTitle.LifecycleStatus, argID))
		args = append(args, filter.Lifecycle)
		argID++
	}

	// Owner filtering (uploader dashboards)
	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.%s = $%d", schema.CoreTitle.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	// Free-text search over name and alternate names
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (t.%s ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(t.%s) alt WHERE alt ILIKE $%d))",
			schema.CoreTitle.Name, argID, schema.CoreTitle.AltNames, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Contributor slug filtering
	if filter.ContributorSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM %s tc
				JOIN %s c ON c.%s = tc.%s
				WHERE tc.%s = t.%s AND c.%s = $%d
			)`,
			schema.CoreTitleContributor.Table,
			schema.CoreContributor.Table, schema.CoreContributor.ID, schema.CoreTitleContributor.ContributorID,
			schema.CoreTitleContributor.TitleID, schema.CoreTitle.ID,
			schema.CoreContributor.Slug, argID))
		args = append(args, filter.ContributorSlug)
		argID++
	}

	// Tag slug filtering
	if filter.TagSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM %s tg
				JOIN %s g ON g.%s = tg.%s
				WHERE tg.%s = t.%s AND g.%s = $%d
			)`,
			schema.CoreTitleTag.Table,
			schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreTitleTag.TagID,
			schema.CoreTitleTag.TitleID, schema.CoreTitle.ID,
			schema.CoreTag.Slug, argID))
		args = append(args, filter.TagSlug)
		argID++
	}

	// Apply Sorting Logic
	// Caller input maps through this fixed whitelist; it is never
	// interpolated into the ORDER BY clause directly.
	sort := fmt.Sprintf("t.%s", schema.CoreTitle.CreatedAt) // default
	switch filter.Sort {
	case "popular":
		sort = fmt.Sprintf("t.%s", schema.CoreTitle.ViewCount)
	case "rating":
		sort = fmt.Sprintf("t.%s", schema.CoreTitle.RatingAvg)
	case "updated":
		sort = fmt.Sprintf("t.%s", schema.CoreTitle.LastChapterAt)
	case "name":
		sort = fmt.Sprintf("t.%s", schema.CoreTitle.Name)
	case "latest":
		sort = fmt.Sprintf("t.%s", schema.CoreTitle.CreatedAt)
	}

	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" || filter.Sort == "name" {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s NULLS LAST, t.%s DESC", sort, sortDir, schema.CoreTitle.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	var totalCount int

	for rows.Next() {
		t, err := scanTitle(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
	}

	return titles, totalCount, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s t
		WHERE t.%s = $1 AND t.%s IS NULL
	`, titleColumns(), relationSubqueries(), schema.CoreTitle.Table, schema.CoreTitle.ID, schema.CoreTitle.DeletedAt)

	t, err := scanTitle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_title_by_id")
	}
	return t, nil
}

func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s t
		WHERE t.%s = $1 AND t.%s IS NULL
	`, titleColumns(), relationSubqueries(), schema.CoreTitle.Table, schema.CoreTitle.Slug, schema.CoreTitle.DeletedAt)

	t, err := scanTitle(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find_title_by_slug")
	}
	return t, nil
}

func (repository *postgresRepository) Create(context context.Context, title *Title, contributorIDs, tagIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer transaction.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`,
		schema.CoreTitle.Table,
		schema.CoreTitle.ID, schema.CoreTitle.OwnerID, schema.CoreTitle.Name,
		schema.CoreTitle.Slug, schema.CoreTitle.AltNames, schema.CoreTitle.Description,
		schema.CoreTitle.ThumbnailURL, schema.CoreTitle.CoverURL,
		schema.CoreTitle.LifecycleStatus, schema.CoreTitle.ModerationStatus,
		schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
	)

	err = transaction.QueryRow(context, insertQuery,
		title.ID, title.OwnerID, title.Name, title.Slug, title.AltNames,
		title.Description, title.ThumbnailURL, title.CoverURL,
		title.Lifecycle, title.Moderation,
	).Scan(&title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_title")
	}

	if err := insertRelations(context, transaction, title.ID, contributorIDs, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}
	return nil
}

func (repository *postgresRepository) Update(context context.Context, title *Title, contributorIDs, tagIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer transaction.Rollback(context)

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = now()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CoreTitle.Table,
		schema.CoreTitle.Name, schema.CoreTitle.AltNames, schema.CoreTitle.Description,
		schema.CoreTitle.ThumbnailURL, schema.CoreTitle.CoverURL, schema.CoreTitle.LifecycleStatus,
		schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.DeletedAt,
	)

	commandTag, err := transaction.Exec(context, updateQuery,
		title.ID, title.Name, title.AltNames, title.Description,
		title.ThumbnailURL, title.CoverURL, title.Lifecycle,
	)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_title")
	}

	// Replace relations only when the caller supplied a new set.
	if contributorIDs != nil {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
			schema.CoreTitleContributor.Table, schema.CoreTitleContributor.TitleID)
		if _, err := transaction.Exec(context, deleteQuery, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_contributors")
		}
	}
	if tagIDs != nil {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
			schema.CoreTitleTag.Table, schema.CoreTitleTag.TitleID)
		if _, err := transaction.Exec(context, deleteQuery, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_tags")
		}
	}

	if err := insertRelations(context, transaction, title.ID, contributorIDs, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func (repository *postgresRepository) SetModeration(context context.Context, id string, status ModerationStatus) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 AND %s IS NULL",
		schema.CoreTitle.Table, schema.CoreTitle.ModerationStatus, schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.DeletedAt)

	commandTag, err := repository.pool.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_title_moderation")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "set_title_moderation")
	}
	return nil
}

func (repository *postgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = now() WHERE %s = $1 AND %s IS NULL",
		schema.CoreTitle.Table, schema.CoreTitle.DeletedAt,
		schema.CoreTitle.ID, schema.CoreTitle.DeletedAt)

	commandTag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_title")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_title")
	}
	return nil
}

func (repository *postgresRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	// Atomic in-place increment. Never read-modify-write.
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $2 WHERE %s = $1",
		schema.CoreTitle.Table, schema.CoreTitle.ViewCount, schema.CoreTitle.ViewCount,
		schema.CoreTitle.ID)

	if _, err := repository.pool.Exec(context, query, id, delta); err != nil {
		return dberr.Wrap(err, "increment_title_views")
	}
	return nil
}

// insertRelations writes junction rows for the resolved contributor and tag IDs.
func insertRelations(context context.Context, transaction pgx.Tx, titleID string, contributorIDs, tagIDs []string) error {
	contributorQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		schema.CoreTitleContributor.Table,
		schema.CoreTitleContributor.TitleID, schema.CoreTitleContributor.ContributorID,
	)
	for _, contributorID := range contributorIDs {
		if _, err := transaction.Exec(context, contributorQuery, titleID, contributorID); err != nil {
			return dberr.Wrap(err, "insert_title_contributor")
		}
	}

	tagQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		schema.CoreTitleTag.Table,
		schema.CoreTitleTag.TitleID, schema.CoreTitleTag.TagID,
	)
	for _, tagID := range tagIDs {
		if _, err := transaction.Exec(context, tagQuery, titleID, tagID); err != nil {
			return dberr.Wrap(err, "insert_title_tag")
		}
	}

	return nil
}
