// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hondana-app/hondana/internal/platform/database/schema"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

// postgresAccountRepository implements [AccountRepository] using pgx.
type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountRepository constructs a PostgreSQL backed account store.
func NewPostgresAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &postgresAccountRepository{pool: pool}
}

func accountColumns() string {
	return strings.Join(schema.UsersAccount.Columns(), ", ")
}

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID, &account.Email, &account.Handle, &account.PasswordHash,
		&account.Role, &account.Status,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (repository *postgresAccountRepository) Create(context context.Context, account *Account) error {
	table := schema.UsersAccount

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.Email, table.Handle, table.PasswordHash, table.Role, table.Status,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		account.ID, account.Email, account.Handle,
		account.PasswordHash, account.Role, account.Status,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}
	return nil
}

func (repository *postgresAccountRepository) findBy(context context.Context, column, value, action string) (*Account, error) {
	table := schema.UsersAccount

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL",
		accountColumns(), table.Table, column, table.DeletedAt)

	account, err := scanAccount(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return account, nil
}

func (repository *postgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id, "find_account_by_id")
}

func (repository *postgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email, "find_account_by_email")
}

func (repository *postgresAccountRepository) FindByHandle(context context.Context, handle string) (*Account, error) {
	return repository.findBy(context, schema.UsersAccount.Handle, handle, "find_account_by_handle")
}

func (repository *postgresAccountRepository) AccountStatus(context context.Context, userID string) (sec.AccountStatus, error) {
	table := schema.UsersAccount

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL",
		table.Status, table.Table, table.ID, table.DeletedAt)

	var status sec.AccountStatus
	if err := repository.pool.QueryRow(context, query, userID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The account was deleted after the token was issued; report it
			// as locked out rather than failing the request.
			return sec.StatusBanned, nil
		}
		return "", dberr.Wrap(err, "account_status")
	}
	return status, nil
}
