// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package contributor

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

// NewPostgresRepository constructs a PostgreSQL backed contributor store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) EnsureByName(context context.Context, names []string) ([]string, error) {
	// Upsert keyed on the unique name. The no-op DO UPDATE makes RETURNING
	// yield the existing row's ID when the insert loses, so one statement
	// covers both the create and the lookup.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.CoreContributor.Table,
		schema.CoreContributor.ID, schema.CoreContributor.Name, schema.CoreContributor.Slug,
		schema.CoreContributor.Name,
		schema.CoreContributor.Name, schema.CoreContributor.Name,
		schema.CoreContributor.ID,
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
			return nil, dberr.Wrap(err, "ensure_contributor")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Contributor, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CoreContributor.ID, schema.CoreContributor.Name, schema.CoreContributor.Slug,
		schema.CoreContributor.Description, schema.CoreContributor.CreatedAt,
		schema.CoreContributor.Table,
		schema.CoreContributor.Name,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_contributors")
	}
	defer rows.Close()

	contributors := make([]*Contributor, 0)
	var totalCount int

	for rows.Next() {
		c := &Contributor{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_contributor")
		}
		contributors = append(contributors, c)
	}

	return contributors, totalCount, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, contributorSlug string) (*Contributor, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreContributor.ID, schema.CoreContributor.Name, schema.CoreContributor.Slug,
		schema.CoreContributor.Description, schema.CoreContributor.CreatedAt,
		schema.CoreContributor.Table,
		schema.CoreContributor.Slug,
	)

	c := &Contributor{}
	err := repository.pool.QueryRow(context, query, contributorSlug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_contributor_by_slug")
	}

	return c, nil
}
