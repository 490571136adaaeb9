// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: string(role)}
}

func TestAuthorizeOwner(t *testing.T) {
	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		ownerID  string
		wantCode string // empty = allowed
	}{
		{"owner_allowed", claimsFor("u-1", sec.RoleUploader), "u-1", ""},
		{"admin_allowed_on_foreign_resource", claimsFor("u-9", sec.RoleAdmin), "u-1", ""},
		{"non_owner_denied", claimsFor("u-2", sec.RoleUploader), "u-1", "FORBIDDEN"},
		{"reader_denied_even_if_owner_role_low", claimsFor("u-2", sec.RoleUser), "u-1", "FORBIDDEN"},
		{"anonymous_denied", nil, "u-1", "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AuthorizeOwner(tt.claims, tt.ownerID)

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestAuthorizeTitleCreation(t *testing.T) {
	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		wantCode string
	}{
		{"uploader_allowed", claimsFor("u-1", sec.RoleUploader), ""},
		{"admin_allowed", claimsFor("u-1", sec.RoleAdmin), ""},
		{"reader_denied", claimsFor("u-1", sec.RoleUser), "FORBIDDEN"},
		{"anonymous_denied", nil, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AuthorizeTitleCreation(tt.claims)

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUploader))
	assert.True(t, sec.RoleUploader.AtLeast(sec.RoleUploader))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleUploader))
	assert.False(t, sec.UserRole("unknown").AtLeast(sec.RoleUser))
}

func TestAccountStatus_CanAct(t *testing.T) {
	assert.True(t, sec.StatusActive.CanAct())
	assert.False(t, sec.StatusBanned.CanAct())
	assert.False(t, sec.StatusSuspended.CanAct())
}
