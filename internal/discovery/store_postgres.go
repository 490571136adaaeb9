// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed discovery store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func cardColumns(alias string) string {
	t := schema.CoreTitle
	columns := []string{
		t.ID, t.Name, t.Slug, t.ThumbnailURL, t.LifecycleStatus,
		t.ChapterCount, t.ViewCount, t.RatingAvg, t.LastChapterAt,
	}
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

func scanCard(row interface{ Scan(...any) error }, extra ...any) (*TitleCard, error) {
	card := &TitleCard{}
	targets := []any{
		&card.ID, &card.Name, &card.Slug, &card.ThumbnailURL, &card.Lifecycle,
		&card.ChapterCount, &card.ViewCount, &card.AverageRating, &card.LastChapterAt,
	}
	targets = append(targets, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return card, nil
}

// approvedFilter restricts a query to approved, non-deleted titles.
func approvedFilter(alias string) string {
	t := schema.CoreTitle
	return fmt.Sprintf("%s.%s = '%s' AND %s.%s IS NULL",
		alias, t.ModerationStatus, title.ModerationApproved, alias, t.DeletedAt)
}

func (repository *postgresRepository) Trending(context context.Context, limit int) ([]*TitleCard, error) {
	t := schema.CoreTitle

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s t
		WHERE %s
		ORDER BY t.%s DESC, t.%s DESC
		LIMIT $1
	`,
		cardColumns("t"), t.Table, approvedFilter("t"),
		t.ViewCount, t.RatingAvg,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "trending_titles")
	}
	defer rows.Close()

	cards := make([]*TitleCard, 0, limit)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_trending")
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (repository *postgresRepository) RecentlyUpdated(context context.Context, limit int) ([]*UpdatedEntry, error) {
	t := schema.CoreTitle
	c := schema.CoreChapter

	// LATERAL fetches each title's newest published chapter in the same pass.
	query := fmt.Sprintf(`
		SELECT %s, latest.%s, latest.%s, latest.%s, latest.%s, latest.%s
		FROM %s t
		CROSS JOIN LATERAL (
			SELECT c.%s, c.%s, c.%s, c.%s, c.%s
			FROM %s c
			WHERE c.%s = t.%s AND c.%s = '%s' AND c.%s IS NULL
			ORDER BY c.%s DESC
			LIMIT 1
		) latest
		WHERE %s AND t.%s IS NOT NULL
		ORDER BY t.%s DESC
		LIMIT $1
	`,
		cardColumns("t"), c.ID, c.Name, c.Slug, c.Ordinal, c.PublishedAt,
		t.Table,
		c.ID, c.Name, c.Slug, c.Ordinal, c.PublishedAt,
		c.Table,
		c.TitleID, t.ID, c.PublishStatus, chapter.PublishPublished, c.DeletedAt,
		c.PublishedAt,
		approvedFilter("t"), t.LastChapterAt,
		t.LastChapterAt,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "recently_updated")
	}
	defer rows.Close()

	entries := make([]*UpdatedEntry, 0, limit)
	for rows.Next() {
		latest := &chapter.Summary{}
		card, err := scanCard(rows,
			&latest.ID, &latest.Name, &latest.Slug, &latest.Ordinal, &latest.PublishedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_recently_updated")
		}
		latest.TitleID = card.ID
		entries = append(entries, &UpdatedEntry{Title: card, LatestChapter: latest})
	}
	return entries, nil
}

func (repository *postgresRepository) LatestReadPerTitle(context context.Context, userID string, limit int) ([]*ContinueEntry, error) {
	h := schema.LibraryReadingHistory
	t := schema.CoreTitle

	// DISTINCT ON keeps only the newest record per title; the outer ORDER BY
	// then ranks the collapsed set by recency. LEFT JOIN keeps activity on
	// deleted titles with null card fields.
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s,
			t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s
		FROM (
			SELECT DISTINCT ON (%s) %s, %s, %s, %s, %s
			FROM %s
			WHERE %s = $1
			ORDER BY %s, %s DESC
		) r
		LEFT JOIN %s t ON t.%s = r.%s AND t.%s IS NULL
		ORDER BY r.%s DESC
		LIMIT $2
	`,
		h.TitleID, h.ChapterID, h.CurrentPage, h.ProgressPercent, h.LastActivityAt,
		t.ID, t.Name, t.Slug, t.ThumbnailURL, t.LifecycleStatus,
		t.ChapterCount, t.ViewCount, t.RatingAvg, t.LastChapterAt,
		h.TitleID, h.TitleID, h.ChapterID, h.CurrentPage, h.ProgressPercent, h.LastActivityAt,
		h.Table,
		h.UserID,
		h.TitleID, h.LastActivityAt,
		t.Table, t.ID, h.TitleID, t.DeletedAt,
		h.LastActivityAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "continue_reading")
	}
	defer rows.Close()

	entries := make([]*ContinueEntry, 0, limit)
	for rows.Next() {
		entry := &ContinueEntry{}
		var cardID, cardName, cardSlug, cardThumb, cardLifecycle *string
		var cardChapters *int
		var cardViews *int64
		var cardRating *float64
		var cardLastChapter *time.Time

		err := rows.Scan(
			&entry.TitleID, &entry.ChapterID, &entry.CurrentPage, &entry.Percent, &entry.LastActivityAt,
			&cardID, &cardName, &cardSlug, &cardThumb, &cardLifecycle,
			&cardChapters, &cardViews, &cardRating, &cardLastChapter,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_continue_reading")
		}

		if cardID != nil {
			card := &TitleCard{
				ID:            *cardID,
				Name:          *cardName,
				Slug:          *cardSlug,
				ThumbnailURL:  *cardThumb,
				Lifecycle:     *cardLifecycle,
				ChapterCount:  *cardChapters,
				ViewCount:     *cardViews,
				AverageRating: *cardRating,
				LastChapterAt: cardLastChapter,
			}
			entry.Title = card
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func (repository *postgresRepository) ApprovedTitleIDs(context context.Context) ([]string, error) {
	t := schema.CoreTitle

	query := fmt.Sprintf("SELECT t.%s FROM %s t WHERE %s",
		t.ID, t.Table, approvedFilter("t"))

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "approved_title_ids")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_title_id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (repository *postgresRepository) TitleCardsByIDs(context context.Context, ids []string) ([]*TitleCard, error) {
	if len(ids) == 0 {
		return []*TitleCard{}, nil
	}

	t := schema.CoreTitle

	query := fmt.Sprintf("SELECT %s FROM %s t WHERE t.%s = ANY($1) AND %s",
		cardColumns("t"), t.Table, t.ID, approvedFilter("t"))

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "title_cards_by_ids")
	}
	defer rows.Close()

	cards := make([]*TitleCard, 0, len(ids))
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_title_card")
		}
		cards = append(cards, card)
	}
	return cards, nil
}
