// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/objstore"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/pkg/pagination"
)

// # Test Fakes

// fakeTitleCatalog backs the chapter service's title lookups and mirrors the
// counter semantics the real store implements transactionally.
type fakeTitleCatalog struct {
	titles map[string]*title.Title
}

func (f *fakeTitleCatalog) FindByID(_ context.Context, id string) (*title.Title, error) {
	t, ok := f.titles[id]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find_title_by_id")
	}
	return t, nil
}

func (f *fakeTitleCatalog) IncrementViewCount(_ context.Context, id string, delta int64) error {
	if t, ok := f.titles[id]; ok {
		t.ViewCount += delta
	}
	return nil
}

// fakeChapterRepo enforces per-title ordinal uniqueness and performs the
// paired counter writes against the fake title catalog.
type fakeChapterRepo struct {
	catalog  *fakeTitleCatalog
	chapters map[string]*chapter.Chapter
	audits   int
}

func newFixture() (*fakeChapterRepo, *fakeTitleCatalog) {
	catalog := &fakeTitleCatalog{titles: map[string]*title.Title{
		"t1": {ID: "t1", OwnerID: "owner", Slug: "vagrant-blade", Moderation: title.ModerationApproved},
	}}
	return &fakeChapterRepo{catalog: catalog, chapters: make(map[string]*chapter.Chapter)}, catalog
}

func (f *fakeChapterRepo) ListByTitle(_ context.Context, titleID string, filter chapter.Filter, limit, offset int) ([]*chapter.Chapter, int, error) {
	var matched []*chapter.Chapter
	for _, c := range f.chapters {
		if c.TitleID != titleID || c.DeletedAt != nil {
			continue
		}
		if len(filter.PublishStatus) > 0 && c.PublishStatus != filter.PublishStatus[0] {
			continue
		}
		matched = append(matched, c)
	}
	return matched, len(matched), nil
}

func (f *fakeChapterRepo) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok || c.DeletedAt != nil {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find_chapter_by_id")
	}
	return c, nil
}

func (f *fakeChapterRepo) Create(_ context.Context, c *chapter.Chapter) error {
	for _, existing := range f.chapters {
		if existing.TitleID == c.TitleID && existing.Ordinal == c.Ordinal && existing.DeletedAt == nil {
			return apperr.Conflict("Resource already exists")
		}
	}
	f.chapters[c.ID] = c

	owning := f.catalog.titles[c.TitleID]
	owning.ChapterCount++
	if c.PublishedAt != nil && (owning.LastChapterAt == nil || c.PublishedAt.After(*owning.LastChapterAt)) {
		owning.LastChapterAt = c.PublishedAt
	}
	return nil
}

func (f *fakeChapterRepo) Update(_ context.Context, c *chapter.Chapter) error {
	if _, ok := f.chapters[c.ID]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "update_chapter")
	}
	f.chapters[c.ID] = c

	owning := f.catalog.titles[c.TitleID]
	if c.PublishedAt != nil && (owning.LastChapterAt == nil || c.PublishedAt.After(*owning.LastChapterAt)) {
		owning.LastChapterAt = c.PublishedAt
	}
	return nil
}

func (f *fakeChapterRepo) SoftDelete(_ context.Context, id, titleID string) error {
	c, ok := f.chapters[id]
	if !ok || c.DeletedAt != nil {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_chapter")
	}
	now := time.Now()
	c.DeletedAt = &now
	f.catalog.titles[titleID].ChapterCount--
	return nil
}

func (f *fakeChapterRepo) IncrementViewCount(_ context.Context, id string, delta int64) error {
	if c, ok := f.chapters[id]; ok {
		c.ViewCount += delta
	}
	return nil
}

func (f *fakeChapterRepo) InsertViewAudit(_ context.Context, _, _, _, _ string, _ time.Time) error {
	f.audits++
	return nil
}

// fakeObjStore materializes uploads as predictable URLs, or fails outright.
type fakeObjStore struct {
	fail bool
	puts int
}

func (f *fakeObjStore) Put(_ context.Context, _ []byte, _, _ string) (objstore.Object, error) {
	if f.fail {
		return objstore.Object{}, errors.New("bucket unreachable")
	}
	f.puts++
	return objstore.Object{URL: "https://img.hondana.app/p" + string(rune('0'+f.puts)), Width: 800, Height: 1200}, nil
}

// fakeThrottle counts the first view per (viewer, chapter) pair.
type fakeThrottle struct {
	seen map[string]bool
}

func (f *fakeThrottle) FirstView(_ context.Context, viewerKey, chapterID string) (bool, error) {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	key := viewerKey + "|" + chapterID
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func newChapterService(repo *fakeChapterRepo, catalog *fakeTitleCatalog, store *fakeObjStore) *chapter.Service {
	return chapter.NewService(repo, catalog, store, &fakeThrottle{}, slog.Default())
}

func ownerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "owner", Role: string(sec.RoleUploader)}
}

// # Tests

func TestService_CreateChapter_DerivesSlugAndCounters(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	created, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Name:      "The Duel",
		Ordinal:   "10.5",
		ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})

	require.NoError(t, err)
	assert.Equal(t, "vagrant-blade-ch-10.5", created.Slug)
	assert.Equal(t, chapter.Ordinal(10500), created.Ordinal)
	assert.Equal(t, 1, created.ImageCount)
	assert.Equal(t, 1, catalog.titles["t1"].ChapterCount)
	require.NotNil(t, catalog.titles["t1"].LastChapterAt)
}

func TestService_CreateChapter_DraftLeavesLastChapterAtNil(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	created, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Name:          "Hidden Draft",
		Ordinal:       "1",
		ImageURLs:     []string{"https://img.hondana.app/a.webp"},
		PublishStatus: chapter.PublishDraft,
	})

	require.NoError(t, err)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, 1, catalog.titles["t1"].ChapterCount)
	// A title with no published chapters has no last-chapter timestamp,
	// not an epoch placeholder.
	assert.Nil(t, catalog.titles["t1"].LastChapterAt)
}

func TestService_UpdateChapter_PublishAdvancesLastChapterAt(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	created, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal:       "1",
		ImageURLs:     []string{"https://img.hondana.app/a.webp"},
		PublishStatus: chapter.PublishDraft,
	})
	require.NoError(t, err)
	require.Nil(t, catalog.titles["t1"].LastChapterAt)

	updated, err := service.UpdateChapter(context.Background(), ownerClaims(), created.ID, chapter.UpdateInput{
		PublishStatus: chapter.PublishPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)

	// The publish transition moves the title's recency marker with it.
	require.NotNil(t, catalog.titles["t1"].LastChapterAt)
	assert.Equal(t, *updated.PublishedAt, *catalog.titles["t1"].LastChapterAt)
}

func TestService_CreateChapter_DuplicateOrdinalConflict(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	_, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal:   "1.5",
		ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})
	require.NoError(t, err)

	_, err = service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal:   "1.5",
		ImageURLs: []string{"https://img.hondana.app/b.webp"},
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	// The failed create must not move the counter.
	assert.Equal(t, 1, catalog.titles["t1"].ChapterCount)
}

func TestService_CreateChapter_RequiresImage(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	_, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{Ordinal: "1"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_CreateChapter_OwnershipGate(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	intruder := &sec.AuthClaims{UserID: "intruder", Role: string(sec.RoleUploader)}
	_, err := service.CreateChapter(context.Background(), intruder, "t1", chapter.CreateInput{
		Ordinal:   "1",
		ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_CreateChapter_UploadFailureAborts(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{fail: true})

	_, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "1",
		Uploads: []chapter.Upload{{Data: []byte{0xFF}, MimeType: "image/webp"}},
	})

	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", apperr.As(err).Code)
	// No partial chapter persisted, no counter movement.
	assert.Empty(t, repo.chapters)
	assert.Equal(t, 0, catalog.titles["t1"].ChapterCount)
}

func TestService_CreateChapter_MixesUploadsAndURLs(t *testing.T) {
	repo, catalog := newFixture()
	store := &fakeObjStore{}
	service := newChapterService(repo, catalog, store)

	created, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal:   "2",
		Uploads:   []chapter.Upload{{Data: []byte{0x01}, MimeType: "image/webp"}},
		ImageURLs: []string{"https://img.hondana.app/direct.webp"},
	})

	require.NoError(t, err)
	require.Len(t, created.Pages, 2)
	assert.Equal(t, 1, store.puts)
	// Uploaded pages come first, then direct URLs.
	assert.Equal(t, "https://img.hondana.app/direct.webp", created.Pages[1])
}

func TestService_UploadPage_StoresBytes(t *testing.T) {
	repo, catalog := newFixture()
	store := &fakeObjStore{}
	service := newChapterService(repo, catalog, store)

	object, err := service.UploadPage(context.Background(), ownerClaims(), "t1", []byte{0x01, 0x02}, "image/webp")
	require.NoError(t, err)
	assert.Equal(t, 1, store.puts)
	assert.NotEmpty(t, object.URL)

	_, err = service.UploadPage(context.Background(), ownerClaims(), "t1", nil, "image/webp")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_UploadPage_OwnershipGate(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	intruder := &sec.AuthClaims{UserID: "intruder", Role: string(sec.RoleUploader)}
	_, err := service.UploadPage(context.Background(), intruder, "t1", []byte{0x01}, "image/webp")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_ChapterCountTracksCreateAndDelete(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	first, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "1", ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})
	require.NoError(t, err)
	_, err = service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "2", ImageURLs: []string{"https://img.hondana.app/b.webp"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.titles["t1"].ChapterCount)

	require.NoError(t, service.DeleteChapter(context.Background(), ownerClaims(), first.ID))
	assert.Equal(t, 1, catalog.titles["t1"].ChapterCount)
}

func TestService_RecordView(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	created, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "1", ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})
	require.NoError(t, err)

	reader := &sec.AuthClaims{UserID: "reader", Role: string(sec.RoleUser)}

	// First view counts everywhere and writes an audit row.
	require.NoError(t, service.RecordView(context.Background(), reader, created.ID, reader.UserID))
	assert.Equal(t, int64(1), repo.chapters[created.ID].ViewCount)
	assert.Equal(t, int64(1), catalog.titles["t1"].ViewCount)
	assert.Equal(t, 1, repo.audits)

	// Repeat view inside the dedup window is suppressed.
	require.NoError(t, service.RecordView(context.Background(), reader, created.ID, reader.UserID))
	assert.Equal(t, int64(1), repo.chapters[created.ID].ViewCount)
	assert.Equal(t, 1, repo.audits)

	// Anonymous view counts but leaves no audit row.
	require.NoError(t, service.RecordView(context.Background(), nil, created.ID, "203.0.113.9"))
	assert.Equal(t, int64(2), repo.chapters[created.ID].ViewCount)
	assert.Equal(t, int64(2), catalog.titles["t1"].ViewCount)
	assert.Equal(t, 1, repo.audits)
}

func TestService_ListChapters_HidesDraftsFromPublic(t *testing.T) {
	repo, catalog := newFixture()
	service := newChapterService(repo, catalog, &fakeObjStore{})

	_, err := service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "1", ImageURLs: []string{"https://img.hondana.app/a.webp"},
	})
	require.NoError(t, err)
	_, err = service.CreateChapter(context.Background(), ownerClaims(), "t1", chapter.CreateInput{
		Ordinal: "2", ImageURLs: []string{"https://img.hondana.app/b.webp"}, PublishStatus: chapter.PublishDraft,
	})
	require.NoError(t, err)

	public, _, err := service.ListChapters(context.Background(), nil, "t1", chapter.Filter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	own, _, err := service.ListChapters(context.Background(), ownerClaims(), "t1", chapter.Filter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, own, 2)
}
