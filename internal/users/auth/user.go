// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package auth implements account registration, credential verification and
session lifecycle for the Hondana platform.

Access tokens are short-lived JWTs and cannot be revoked before expiry. Each
login therefore also establishes a refresh session in Redis keyed by the
digest of an opaque refresh token; revoking the session logs the client out
once the JWT lapses. Refresh tokens rotate on every use.
*/
package auth

import (
	"time"

	"github.com/hondana-app/hondana/internal/platform/sec"
)

// Account represents a registered member of the Hondana platform.
//
// # Rules
//   - Handle is unique and URL-safe.
//   - Email is unique.
//   - PasswordHash is produced by bcrypt exclusively via the auth service.
//   - Status gates every authenticated operation; banned and suspended
//     accounts keep their data but cannot act.
type Account struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Handle       string            `json:"handle"`
	PasswordHash string            `json:"-"`
	Role         sec.UserRole      `json:"role"`
	Status       sec.AccountStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    *time.Time        `json:"-"`
}

// Session is an active refresh-token session. Only the token digest is ever
// stored; the opaque token lives solely in the client's cookie.
type Session struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
