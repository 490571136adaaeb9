// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package discovery_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/discovery"
	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

// # Test Fakes

type activity struct {
	userID    string
	titleID   string
	chapterID string
	at        time.Time
}

type fakeRepository struct {
	approvedIDs []string
	cards       map[string]*discovery.TitleCard
	activities  []activity

	lastTrendingLimit int
}

func (f *fakeRepository) Trending(_ context.Context, limit int) ([]*discovery.TitleCard, error) {
	f.lastTrendingLimit = limit
	return []*discovery.TitleCard{}, nil
}

func (f *fakeRepository) RecentlyUpdated(_ context.Context, limit int) ([]*discovery.UpdatedEntry, error) {
	return []*discovery.UpdatedEntry{}, nil
}

// LatestReadPerTitle collapses to one entry per title and orders newest
// first, matching the DISTINCT ON query.
func (f *fakeRepository) LatestReadPerTitle(_ context.Context, userID string, limit int) ([]*discovery.ContinueEntry, error) {
	newest := make(map[string]activity)
	for _, record := range f.activities {
		if record.userID != userID {
			continue
		}
		if current, ok := newest[record.titleID]; !ok || record.at.After(current.at) {
			newest[record.titleID] = record
		}
	}

	entries := make([]*discovery.ContinueEntry, 0, len(newest))
	for _, record := range newest {
		entries = append(entries, &discovery.ContinueEntry{
			TitleID:        record.titleID,
			ChapterID:      record.chapterID,
			LastActivityAt: record.at,
			Title:          f.cards[record.titleID],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastActivityAt.After(entries[j].LastActivityAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (f *fakeRepository) ApprovedTitleIDs(_ context.Context) ([]string, error) {
	return append([]string(nil), f.approvedIDs...), nil
}

func (f *fakeRepository) TitleCardsByIDs(_ context.Context, ids []string) ([]*discovery.TitleCard, error) {
	cards := make([]*discovery.TitleCard, 0, len(ids))
	for _, id := range ids {
		if card, ok := f.cards[id]; ok {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func readerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "reader", Role: string(sec.RoleUser)}
}

// # Tests

func TestService_ContinueReading_CollapsesPerTitle(t *testing.T) {
	base := time.Now()
	repo := &fakeRepository{
		cards: map[string]*discovery.TitleCard{
			"t1": {ID: "t1", Name: "Vagrant Blade"},
			"t2": {ID: "t2", Name: "Moonlit Archive"},
		},
		activities: []activity{
			{"reader", "t1", "c1", base.Add(-3 * time.Hour)},
			{"reader", "t1", "c2", base.Add(-1 * time.Hour)},
			{"reader", "t2", "c9", base.Add(-2 * time.Hour)},
		},
	}
	service := discovery.NewService(repo, slog.Default())

	entries, err := service.ContinueReading(context.Background(), readerClaims(), 10)
	require.NoError(t, err)

	// Three reads across two titles collapse to exactly two entries.
	require.Len(t, entries, 2)
	assert.Equal(t, "t1", entries[0].TitleID)
	assert.Equal(t, "c2", entries[0].ChapterID)
	assert.Equal(t, "t2", entries[1].TitleID)
}

func TestService_ContinueReading_RequiresAuthentication(t *testing.T) {
	service := discovery.NewService(&fakeRepository{}, slog.Default())

	_, err := service.ContinueReading(context.Background(), nil, 10)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_RandomSample_NoRepeats(t *testing.T) {
	repo := &fakeRepository{
		approvedIDs: []string{"t1", "t2", "t3", "t4", "t5"},
		cards: map[string]*discovery.TitleCard{
			"t1": {ID: "t1"}, "t2": {ID: "t2"}, "t3": {ID: "t3"},
			"t4": {ID: "t4"}, "t5": {ID: "t5"},
		},
	}
	service := discovery.NewService(repo, slog.Default())

	cards, err := service.RandomSample(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cards, 5)

	seen := make(map[string]bool)
	for _, card := range cards {
		assert.False(t, seen[card.ID], "duplicate id %s", card.ID)
		seen[card.ID] = true
	}
}

func TestService_RandomSample_PoolSmallerThanLimit(t *testing.T) {
	repo := &fakeRepository{
		approvedIDs: []string{"t1", "t2"},
		cards:       map[string]*discovery.TitleCard{"t1": {ID: "t1"}, "t2": {ID: "t2"}},
	}
	service := discovery.NewService(repo, slog.Default())

	cards, err := service.RandomSample(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestService_Trending_ClampsLimit(t *testing.T) {
	repo := &fakeRepository{}
	service := discovery.NewService(repo, slog.Default())

	_, err := service.Trending(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastTrendingLimit)

	_, err = service.Trending(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastTrendingLimit)
}
