// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package sec

import (
	"github.com/hondana-app/hondana/internal/platform/apperr"
)

// # Ownership Guard

// The guard decides whether an acting principal may mutate an owned catalog
// resource. It is a pure decision function: no store access, no side effects.
// Account status (banned/suspended) is NOT checked here — that happens at
// principal-resolution time in the middleware, before any guard runs.

/*
AuthorizeOwner decides whether the principal may mutate a resource owned by ownerID.

Description: A mutation on a Title or Chapter is allowed iff the principal is
an admin or is the resource owner. Anonymous principals are always denied.

Parameters:
  - claims: *AuthClaims (nil for anonymous requests)
  - ownerID: string (The resource's owning contributor/uploader ID)

Returns:
  - error: nil when allowed; apperr.Unauthorized / apperr.Forbidden when denied
*/
func AuthorizeOwner(claims *AuthClaims, ownerID string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if UserRole(claims.Role) == RoleAdmin {
		return nil
	}

	if claims.UserID == ownerID {
		return nil
	}

	return apperr.Forbidden("You do not own this resource")
}

/*
AuthorizeTitleCreation decides whether the principal may create new titles.

Description: Title creation is restricted to uploader and admin roles.
Standard readers are denied.

Parameters:
  - claims: *AuthClaims (nil for anonymous requests)

Returns:
  - error: nil when allowed; apperr.Unauthorized / apperr.Forbidden when denied
*/
func AuthorizeTitleCreation(claims *AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if UserRole(claims.Role).AtLeast(RoleUploader) {
		return nil
	}

	return apperr.Forbidden("Uploader role required to create titles")
}
