// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed progress store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func recordColumns() string {
	return strings.Join(schema.LibraryReadingHistory.Columns(), ", ")
}

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	record := &Record{}
	err := row.Scan(
		&record.ID, &record.UserID, &record.ChapterID, &record.TitleID,
		&record.CurrentPage, &record.TotalPages,
		&record.ProgressPercent, &record.IsComplete, &record.LastActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (repository *postgresRepository) Upsert(context context.Context, record *Record) error {
	table := schema.LibraryReadingHistory

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
		RETURNING %s
	`,
		table.Table, recordColumns(),
		table.UserID, table.ChapterID,
		table.CurrentPage, table.CurrentPage,
		table.TotalPages, table.TotalPages,
		table.ProgressPercent, table.ProgressPercent,
		table.IsComplete, table.IsComplete,
		table.LastActivityAt, table.LastActivityAt,
		table.ID,
	)

	// The existing row keeps its original id on conflict; RETURNING hands it
	// back so the caller sees the canonical record identity.
	err := repository.pool.QueryRow(context, query,
		record.ID, record.UserID, record.ChapterID, record.TitleID,
		record.CurrentPage, record.TotalPages,
		record.ProgressPercent, record.IsComplete, record.LastActivityAt,
	).Scan(&record.ID)
	if err != nil {
		return dberr.Wrap(err, "upsert_progress")
	}
	return nil
}

func (repository *postgresRepository) FindByChapter(context context.Context, userID, chapterID string) (*Record, error) {
	table := schema.LibraryReadingHistory

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		recordColumns(), table.Table, table.UserID, table.ChapterID)

	record, err := scanRecord(repository.pool.QueryRow(context, query, userID, chapterID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_progress")
	}
	return record, nil
}

func (repository *postgresRepository) ListByTitle(context context.Context, userID, titleID string) ([]*Record, error) {
	table := schema.LibraryReadingHistory

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s DESC",
		recordColumns(), table.Table, table.UserID, table.TitleID, table.LastActivityAt)

	rows, err := repository.pool.Query(context, query, userID, titleID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_progress")
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_progress")
		}
		records = append(records, record)
	}
	return records, nil
}
