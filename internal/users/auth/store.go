// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package auth

import (
	"context"

	"github.com/hondana-app/hondana/internal/platform/sec"
)

// AccountRepository defines the data access contract for user accounts.
type AccountRepository interface {

	/*
		Create inserts a new account.

		Parameters:
		  - context: context.Context
		  - account: *Account (ID, Email, Handle, PasswordHash, Role, Status)

		Returns:
		  - error: CONFLICT when the email or handle is already taken
	*/
	Create(context context.Context, account *Account) error

	/*
		FindByID returns a non-deleted account by id.

		Returns:
		  - *Account: The account
		  - error: NOT_FOUND when absent or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Account, error)

	// FindByEmail returns a non-deleted account by email.
	FindByEmail(context context.Context, email string) (*Account, error)

	// FindByHandle returns a non-deleted account by handle.
	FindByHandle(context context.Context, handle string) (*Account, error)

	/*
		AccountStatus returns the current status for an account. Deleted or
		unknown accounts report as banned so stale tokens stop working.

		Used by the authentication middleware on every request carrying a
		token, so the lookup must stay a single indexed read.
	*/
	AccountStatus(context context.Context, userID string) (sec.AccountStatus, error)
}

// SessionRepository defines the storage contract for refresh sessions.
// Implementations key sessions by the refresh token digest.
type SessionRepository interface {

	// Save stores the session under the token digest with a TTL matching the
	// session expiry.
	Save(context context.Context, tokenHash string, session *Session) error

	/*
		Find returns the session for a token digest.

		Returns:
		  - *Session: The session
		  - error: UNAUTHORIZED when the digest is unknown or expired
	*/
	Find(context context.Context, tokenHash string) (*Session, error)

	// Delete removes the session for a token digest. Deleting an absent
	// session is not an error.
	Delete(context context.Context, tokenHash string) error
}
