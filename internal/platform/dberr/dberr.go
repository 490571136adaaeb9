// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// Concurrent identical mutations (two near-simultaneous bookmark inserts,
// two chapters claiming the same ordinal) are disambiguated by unique
// constraints at the store; the loser surfaces here as a SQLSTATE 23505
// and is translated into a client-facing Conflict.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hondana-app/hondana/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failed operation for conflict messages
// (e.g. "create_chapter").
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a SQLSTATE 23505 unique-constraint
// violation. Stores use it where a duplicate is a branch, not a failure
// (e.g. the atomic bookmark toggle).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
