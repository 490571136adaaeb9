// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package bookmark_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/library/bookmark"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// # Test Fakes

// fakeRepository enforces (user, title) uniqueness like the real constraint
// and mirrors the paired bookmarkCount writes the real store performs
// transactionally.
type fakeRepository struct {
	records map[string]*bookmark.Bookmark // keyed user|title
	counts  map[string]int64              // keyed title
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		records: make(map[string]*bookmark.Bookmark),
		counts:  make(map[string]int64),
	}
}

func pairKey(userID, titleID string) string { return userID + "|" + titleID }

func (f *fakeRepository) Add(_ context.Context, b *bookmark.Bookmark) error {
	key := pairKey(b.UserID, b.TitleID)
	if _, exists := f.records[key]; exists {
		return apperr.Conflict("Resource already exists")
	}
	b.CreatedAt = time.Now()
	f.records[key] = b
	f.counts[b.TitleID]++
	return nil
}

func (f *fakeRepository) Remove(_ context.Context, userID, titleID string) error {
	key := pairKey(userID, titleID)
	if _, exists := f.records[key]; !exists {
		return dberr.Wrap(pgx.ErrNoRows, "remove_bookmark")
	}
	delete(f.records, key)
	f.counts[titleID]--
	return nil
}

func (f *fakeRepository) Toggle(_ context.Context, id, userID, titleID string) (bool, error) {
	key := pairKey(userID, titleID)
	if _, exists := f.records[key]; exists {
		delete(f.records, key)
		f.counts[titleID]--
		return false, nil
	}
	f.records[key] = &bookmark.Bookmark{ID: id, UserID: userID, TitleID: titleID, CreatedAt: time.Now()}
	f.counts[titleID]++
	return true, nil
}

func (f *fakeRepository) Exists(_ context.Context, userID, titleID string) (bool, error) {
	_, exists := f.records[pairKey(userID, titleID)]
	return exists, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*bookmark.Bookmark, int, error) {
	var matched []*bookmark.Bookmark
	for _, b := range f.records {
		if b.UserID == userID {
			matched = append(matched, b)
		}
	}
	return matched, len(matched), nil
}

func readerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "reader", Role: string(sec.RoleUser)}
}

// # Tests

func TestService_AddBookmark_DuplicateConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := bookmark.NewService(repo, slog.Default())

	require.NoError(t, service.AddBookmark(context.Background(), readerClaims(), "t1"))

	err := service.AddBookmark(context.Background(), readerClaims(), "t1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// At most one record per pair survives the duplicate attempt.
	items, _, err := service.ListBookmarks(context.Background(), readerClaims(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_RemoveBookmark_AbsentNotFound(t *testing.T) {
	service := bookmark.NewService(newFakeRepository(), slog.Default())

	err := service.RemoveBookmark(context.Background(), readerClaims(), "t1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_ToggleBookmark_DoubleToggleRestoresState(t *testing.T) {
	repo := newFakeRepository()
	service := bookmark.NewService(repo, slog.Default())

	bookmarked, err := service.ToggleBookmark(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = service.ToggleBookmark(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.False(t, bookmarked)

	exists, err := service.IsBookmarked(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_BookmarkCountPairsWithWrites(t *testing.T) {
	repo := newFakeRepository()
	service := bookmark.NewService(repo, slog.Default())

	require.NoError(t, service.AddBookmark(context.Background(), readerClaims(), "t1"))
	assert.Equal(t, int64(1), repo.counts["t1"])

	// A failed duplicate add must not move the counter.
	require.Error(t, service.AddBookmark(context.Background(), readerClaims(), "t1"))
	assert.Equal(t, int64(1), repo.counts["t1"])

	require.NoError(t, service.RemoveBookmark(context.Background(), readerClaims(), "t1"))
	assert.Equal(t, int64(0), repo.counts["t1"])

	// Toggle adjusts the counter in the same statement as the flip.
	_, err := service.ToggleBookmark(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.counts["t1"])

	_, err = service.ToggleBookmark(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.counts["t1"])
}

func TestService_RequiresAuthentication(t *testing.T) {
	service := bookmark.NewService(newFakeRepository(), slog.Default())

	err := service.AddBookmark(context.Background(), nil, "t1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = service.ToggleBookmark(context.Background(), nil, "t1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
