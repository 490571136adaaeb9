// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package progress_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/catalog/chapter"
	"github.com/hondana-app/hondana/internal/catalog/title"
	"github.com/hondana-app/hondana/internal/library/progress"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

// # Test Fakes

// fakeRepository upserts on the (user, chapter) pair like the real unique
// constraint.
type fakeRepository struct {
	records map[string]*progress.Record
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*progress.Record)}
}

func pairKey(userID, chapterID string) string { return userID + "|" + chapterID }

func (f *fakeRepository) Upsert(_ context.Context, record *progress.Record) error {
	key := pairKey(record.UserID, record.ChapterID)
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
	}
	clone := *record
	f.records[key] = &clone
	return nil
}

func (f *fakeRepository) FindByChapter(_ context.Context, userID, chapterID string) (*progress.Record, error) {
	record, ok := f.records[pairKey(userID, chapterID)]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find_progress")
	}
	return record, nil
}

func (f *fakeRepository) ListByTitle(_ context.Context, userID, titleID string) ([]*progress.Record, error) {
	var matched []*progress.Record
	for _, record := range f.records {
		if record.UserID == userID && record.TitleID == titleID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

type fakeChapterSource struct {
	chapters map[string]*chapter.Chapter
}

func (f *fakeChapterSource) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	entity, ok := f.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	return entity, nil
}

type fakeTitleSource struct {
	titles map[string]*title.Title
}

func (f *fakeTitleSource) FindByID(_ context.Context, id string) (*title.Title, error) {
	entity, ok := f.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return entity, nil
}

type fakeViewRecorder struct {
	calls int
	fail  bool
}

func (f *fakeViewRecorder) RecordView(_ context.Context, _ *sec.AuthClaims, _, _ string) error {
	f.calls++
	if f.fail {
		return apperr.Internal(errors.New("view sink down"))
	}
	return nil
}

type fixture struct {
	repo    *fakeRepository
	views   *fakeViewRecorder
	service *progress.Service
}

func newFixture(chapterCount int) *fixture {
	repo := newFakeRepository()
	views := &fakeViewRecorder{}
	chapters := &fakeChapterSource{chapters: map[string]*chapter.Chapter{
		"c1": {ID: "c1", TitleID: "t1", OwnerID: "owner"},
		"c2": {ID: "c2", TitleID: "t1", OwnerID: "owner"},
	}}
	titles := &fakeTitleSource{titles: map[string]*title.Title{
		"t1": {ID: "t1", OwnerID: "owner", ChapterCount: chapterCount},
	}}
	service := progress.NewService(repo, chapters, titles, views, slog.Default())
	return &fixture{repo: repo, views: views, service: service}
}

func readerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "reader", Role: string(sec.RoleUser)}
}

// # Tests

func TestService_SaveProgress_ComputesPercent(t *testing.T) {
	testCases := []struct {
		name         string
		input        progress.SaveInput
		wantPercent  int
		wantComplete bool
	}{
		{"partway through", progress.SaveInput{CurrentPage: 15, TotalPages: 25}, 60, false},
		{"zero total pages", progress.SaveInput{CurrentPage: 3, TotalPages: 0}, 0, false},
		{"last page", progress.SaveInput{CurrentPage: 25, TotalPages: 25}, 100, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fx := newFixture(2)

			record, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantPercent, record.ProgressPercent)
			assert.Equal(t, testCase.wantComplete, record.IsComplete)
			assert.Equal(t, "t1", record.TitleID)
		})
	}
}

func TestService_SaveProgress_ExplicitCompletion(t *testing.T) {
	fx := newFixture(2)
	explicitTrue := true
	explicitFalse := false

	// The reader can mark the chapter done without reaching the last page.
	record, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{
		CurrentPage: 10, TotalPages: 25, IsComplete: &explicitTrue,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, record.ProgressPercent)
	assert.True(t, record.IsComplete)

	// Reaching 100% completes even when the flag says otherwise.
	record, err = fx.service.SaveProgress(context.Background(), readerClaims(), "c2", progress.SaveInput{
		CurrentPage: 25, TotalPages: 25, IsComplete: &explicitFalse,
	})
	require.NoError(t, err)
	assert.True(t, record.IsComplete)
}

func TestService_SaveProgress_UpsertsSingleRecord(t *testing.T) {
	fx := newFixture(2)

	first, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 5, TotalPages: 25})
	require.NoError(t, err)

	second, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 20, TotalPages: 25})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fx.repo.records, 1)
	assert.Equal(t, 80, fx.repo.records[pairKey("reader", "c1")].ProgressPercent)
}

func TestService_SaveProgress_TriggersViewRecording(t *testing.T) {
	fx := newFixture(2)

	_, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 1, TotalPages: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, fx.views.calls)
}

func TestService_SaveProgress_ViewFailureDoesNotUndoSave(t *testing.T) {
	fx := newFixture(2)
	fx.views.fail = true

	record, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 1, TotalPages: 25})
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Len(t, fx.repo.records, 1)
}

func TestService_SaveProgress_Rejections(t *testing.T) {
	fx := newFixture(2)

	_, err := fx.service.SaveProgress(context.Background(), nil, "c1", progress.SaveInput{CurrentPage: 1, TotalPages: 2})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = fx.service.SaveProgress(context.Background(), readerClaims(), "missing", progress.SaveInput{CurrentPage: 1, TotalPages: 2})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: -1, TotalPages: 2})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 9, TotalPages: 2})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_GetTitleProgress_NilWhenUnread(t *testing.T) {
	fx := newFixture(2)

	summary, err := fx.service.GetTitleProgress(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestService_GetTitleProgress_Summarizes(t *testing.T) {
	fx := newFixture(2)

	_, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 25, TotalPages: 25})
	require.NoError(t, err)
	_, err = fx.service.SaveProgress(context.Background(), readerClaims(), "c2", progress.SaveInput{CurrentPage: 3, TotalPages: 25})
	require.NoError(t, err)

	summary, err := fx.service.GetTitleProgress(context.Background(), readerClaims(), "t1")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.ReadChapters)
	assert.Equal(t, 50, summary.TitleProgressPercent)
	require.NotNil(t, summary.LastRead)
}

func TestService_GetTitleProgress_DeletedTitleYieldsZeroPercent(t *testing.T) {
	fx := newFixture(2)

	_, err := fx.service.SaveProgress(context.Background(), readerClaims(), "c1", progress.SaveInput{CurrentPage: 25, TotalPages: 25})
	require.NoError(t, err)

	// Simulate the title disappearing after progress was saved.
	record := fx.repo.records[pairKey("reader", "c1")]
	record.TitleID = "gone"

	summary, err := fx.service.GetTitleProgress(context.Background(), readerClaims(), "gone")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.ReadChapters)
	assert.Equal(t, 0, summary.TitleProgressPercent)
}
