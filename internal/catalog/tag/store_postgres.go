// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/pkg/slug"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) EnsureByName(context context.Context, names []string) ([]string, error) {
	// Same upsert trick as the contributor store: the no-op DO UPDATE lets
	// RETURNING surface the existing row's ID when the insert loses.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.CoreTag.Table,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Name,
		schema.CoreTag.Name, schema.CoreTag.Name,
		schema.CoreTag.ID,
	)

	ids := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}

		var id string
		err := repository.pool.QueryRow(context, query, uuidv7.Must(), trimmed, slug.From(trimmed)).Scan(&id)
		if err != nil {
			return nil, dberr.Wrap(err, "ensure_tag")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Description, schema.CoreTag.CreatedAt,
		schema.CoreTag.Table,
		schema.CoreTag.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, tagSlug string) (*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Description, schema.CoreTag.CreatedAt,
		schema.CoreTag.Table,
		schema.CoreTag.Slug,
	)

	t := &Tag{}
	err := repository.pool.QueryRow(context, query, tagSlug).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_tag_by_slug")
	}

	return t, nil
}
