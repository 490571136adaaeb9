// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package title_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// # Test Fakes

// fakeRepository is an in-memory [title.Repository].
type fakeRepository struct {
	titles map[string]*title.Title
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{titles: make(map[string]*title.Title)}
}

func (f *fakeRepository) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	var matched []*title.Title
	for _, t := range f.titles {
		if t.DeletedAt != nil {
			continue
		}
		if len(filter.Moderation) > 0 && !containsModeration(filter.Moderation, t.Moderation) {
			continue
		}
		if filter.OwnerID != "" && t.OwnerID != filter.OwnerID {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*title.Title, error) {
	t, ok := f.titles[id]
	if !ok || t.DeletedAt != nil {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find_title_by_id")
	}
	return t, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*title.Title, error) {
	for _, t := range f.titles {
		if t.Slug == slug && t.DeletedAt == nil {
			return t, nil
		}
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "find_title_by_slug")
}

func (f *fakeRepository) Create(_ context.Context, t *title.Title, _, _ []string) error {
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) Update(_ context.Context, t *title.Title, _, _ []string) error {
	if _, ok := f.titles[t.ID]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "update_title")
	}
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) SetModeration(_ context.Context, id string, status title.ModerationStatus) error {
	t, ok := f.titles[id]
	if !ok {
		return dberr.Wrap(pgx.ErrNoRows, "set_title_moderation")
	}
	t.Moderation = status
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string) error {
	t, ok := f.titles[id]
	if !ok || t.DeletedAt != nil {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_title")
	}
	now := t.CreatedAt
	t.DeletedAt = &now
	return nil
}

func (f *fakeRepository) IncrementViewCount(_ context.Context, id string, delta int64) error {
	if t, ok := f.titles[id]; ok {
		t.ViewCount += delta
	}
	return nil
}

func containsModeration(set []title.ModerationStatus, status title.ModerationStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// fakeResolver records the names it was asked to ensure and returns one
// synthetic ID per name.
type fakeResolver struct {
	ensured []string
}

func (f *fakeResolver) EnsureByName(_ context.Context, names []string) ([]string, error) {
	f.ensured = append(f.ensured, names...)
	ids := make([]string, len(names))
	for i, name := range names {
		ids[i] = "id-" + name
	}
	return ids, nil
}

func newService(repo *fakeRepository) (*title.Service, *fakeResolver, *fakeResolver) {
	contributors := &fakeResolver{}
	tags := &fakeResolver{}
	return title.NewService(repo, contributors, tags, slog.Default()), contributors, tags
}

func uploaderClaims(id string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Role: string(sec.RoleUploader)}
}

func adminClaims(id string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Role: string(sec.RoleAdmin)}
}

// # Tests

func TestService_CreateTitle_Authorization(t *testing.T) {
	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		wantCode string
	}{
		{"anonymous_denied", nil, "UNAUTHORIZED"},
		{"reader_denied", &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleUser)}, "FORBIDDEN"},
		{"uploader_allowed", uploaderClaims("u1"), ""},
		{"admin_allowed", adminClaims("a1"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService(newFakeRepository())

			created, err := service.CreateTitle(context.Background(), tt.claims, title.CreateInput{Name: "Vagrant Blade"})

			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, created)
				return
			}
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestService_CreateTitle_EmptyNameFails(t *testing.T) {
	service, _, _ := newService(newFakeRepository())

	_, err := service.CreateTitle(context.Background(), uploaderClaims("u1"), title.CreateInput{Name: "   "})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_CreateTitle_ModerationPerRole(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	byUploader, err := service.CreateTitle(context.Background(), uploaderClaims("u1"), title.CreateInput{Name: "Pending Work"})
	require.NoError(t, err)
	assert.Equal(t, title.ModerationPending, byUploader.Moderation)

	byAdmin, err := service.CreateTitle(context.Background(), adminClaims("a1"), title.CreateInput{Name: "Approved Work"})
	require.NoError(t, err)
	assert.Equal(t, title.ModerationApproved, byAdmin.Moderation)
}

func TestService_CreateTitle_DerivesSlugAndResolvesRelations(t *testing.T) {
	repo := newFakeRepository()
	service, contributors, tags := newService(repo)

	created, err := service.CreateTitle(context.Background(), uploaderClaims("u1"), title.CreateInput{
		Name:             "The  Vagrant   Blade!",
		ContributorNames: []string{"Aoi Mori"},
		TagNames:         []string{"Action", "Drama"},
	})

	require.NoError(t, err)
	assert.Equal(t, "the-vagrant-blade", created.Slug)
	assert.Equal(t, []string{"Aoi Mori"}, contributors.ensured)
	assert.Equal(t, []string{"Action", "Drama"}, tags.ensured)
}

func TestService_ListTitles_ForcesApprovedOnly(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	_, err := service.CreateTitle(context.Background(), uploaderClaims("u1"), title.CreateInput{Name: "Hidden"})
	require.NoError(t, err)
	approved, err := service.CreateTitle(context.Background(), adminClaims("a1"), title.CreateInput{Name: "Visible"})
	require.NoError(t, err)

	items, meta, err := service.ListTitles(context.Background(), title.Filter{}, pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, approved.ID, items[0].ID)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, 1, meta.PageCount)
}

func TestService_GetTitle_HidesUnapprovedFromStrangers(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	pending, err := service.CreateTitle(context.Background(), uploaderClaims("owner"), title.CreateInput{Name: "Pending"})
	require.NoError(t, err)

	// Strangers and anonymous callers get NOT_FOUND, never FORBIDDEN.
	_, err = service.GetTitle(context.Background(), nil, pending.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.GetTitle(context.Background(), uploaderClaims("someone-else"), pending.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Owner and admin can see it.
	got, err := service.GetTitle(context.Background(), uploaderClaims("owner"), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, got.ID)

	got, err = service.GetTitle(context.Background(), adminClaims("a1"), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, got.ID)
}

func TestService_UpdateTitle_OwnershipGate(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	created, err := service.CreateTitle(context.Background(), uploaderClaims("owner"), title.CreateInput{Name: "Original"})
	require.NoError(t, err)

	newName := "Renamed"
	_, err = service.UpdateTitle(context.Background(), uploaderClaims("intruder"), created.ID, title.UpdateInput{Name: &newName})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdateTitle(context.Background(), uploaderClaims("owner"), created.ID, title.UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	// Admin may mutate resources they do not own.
	adminName := "Admin Renamed"
	updated, err = service.UpdateTitle(context.Background(), adminClaims("a1"), created.ID, title.UpdateInput{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "Admin Renamed", updated.Name)
}

func TestService_DeleteTitle(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	created, err := service.CreateTitle(context.Background(), uploaderClaims("owner"), title.CreateInput{Name: "Doomed"})
	require.NoError(t, err)

	err = service.DeleteTitle(context.Background(), uploaderClaims("intruder"), created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteTitle(context.Background(), uploaderClaims("owner"), created.ID))

	_, err = service.GetTitle(context.Background(), uploaderClaims("owner"), created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_ModerateTitle_AdminOnly(t *testing.T) {
	repo := newFakeRepository()
	service, _, _ := newService(repo)

	created, err := service.CreateTitle(context.Background(), uploaderClaims("owner"), title.CreateInput{Name: "Reviewable"})
	require.NoError(t, err)

	err = service.ModerateTitle(context.Background(), uploaderClaims("owner"), created.ID, title.ModerationApproved)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.ModerateTitle(context.Background(), adminClaims("a1"), created.ID, title.ModerationApproved))

	got, err := service.GetTitle(context.Background(), nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, title.ModerationApproved, got.Moderation)
}
