// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can create titles and manage their own publications
	RoleUploader UserRole = "uploader"

	// Default role for standard registered readers
	RoleUser UserRole = "user"
)

// IsValid reports whether r is a recognised [UserRole] value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUploader, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleUploader:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Account Status

// AccountStatus represents the moderation state of a user account.
type AccountStatus string

const (
	// StatusActive accounts can use the platform normally.
	StatusActive AccountStatus = "active"

	// StatusBanned accounts are permanently locked out.
	StatusBanned AccountStatus = "banned"

	// StatusSuspended accounts are temporarily locked out.
	StatusSuspended AccountStatus = "suspended"
)

// CanAct reports whether an account in this status may perform mutating or
// authenticated-read operations. Banned and suspended accounts are denied
// regardless of role.
func (s AccountStatus) CanAct() bool {
	return s == StatusActive
}
