// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/identity"
	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
)

type fakeStore struct {
	seriesBySourceExternal map[string]string
	series                 map[string]storage.SeriesInsert
	sources                map[string]storage.SourceInsert
	seriesSources          []storage.SeriesSourceInsert
	chapterIdentities      map[string][2]string
	episodesBySource       map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seriesBySourceExternal: map[string]string{},
		series:                 map[string]storage.SeriesInsert{},
		sources:                map[string]storage.SourceInsert{},
		chapterIdentities:      map[string][2]string{},
		episodesBySource:       map[string]string{},
	}
}

func key(source, external string) string { return source + "|" + external }

func (f *fakeStore) FindSeriesIDBySourceExternal(_ context.Context, sourceID, externalID string) (string, bool, error) {
	id, ok := f.seriesBySourceExternal[key(sourceID, externalID)]
	return id, ok, nil
}

func (f *fakeStore) UpsertSource(_ context.Context, src storage.SourceInsert) error {
	f.sources[src.ID] = src
	return nil
}

func (f *fakeStore) UpsertSeries(_ context.Context, series storage.SeriesInsert) error {
	f.series[series.ID] = series
	return nil
}

func (f *fakeStore) UpsertSeriesSource(_ context.Context, link storage.SeriesSourceInsert) error {
	f.seriesSources = append(f.seriesSources, link)
	f.seriesBySourceExternal[key(link.SourceID, link.ExternalID)] = link.SeriesID
	return nil
}

func (f *fakeStore) FindChapterIdentity(_ context.Context, key string) (string, string, bool, error) {
	pair, ok := f.chapterIdentities[key]
	if !ok {
		return "", "", false, nil
	}
	return pair[0], pair[1], true, nil
}

func (f *fakeStore) FindEpisodeIDBySourceExternal(_ context.Context, sourceID, externalID string) (string, bool, error) {
	id, ok := f.episodesBySource[key(sourceID, externalID)]
	return id, ok, nil
}

func TestGetOrCreateSeriesID_CreatesNewSeriesWhenUnmapped(t *testing.T) {
	store := newFakeStore()
	resolver := identity.New(store)

	id, err := resolver.GetOrCreateSeriesID(context.Background(), "plugin-a", "ext-1", pluginhost.Media{
		ID:    "ext-1",
		Kind:  pluginhost.MediaManga,
		Title: "Example Series",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, "Example Series", store.series[id].Title)
	assert.Len(t, store.seriesSources, 1)
	assert.Contains(t, store.sources, "plugin-a")
}

func TestGetOrCreateSeriesID_ReturnsExistingMapping(t *testing.T) {
	store := newFakeStore()
	store.seriesBySourceExternal[key("plugin-a", "ext-1")] = "series-123"
	store.series["series-123"] = storage.SeriesInsert{ID: "series-123", Title: "Original Title"}
	resolver := identity.New(store)

	id, err := resolver.GetOrCreateSeriesID(context.Background(), "plugin-a", "ext-1", pluginhost.Media{
		ID:    "ext-1",
		Kind:  pluginhost.MediaManga,
		Title: "Updated Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "series-123", id)
	assert.Equal(t, "Updated Title", store.series["series-123"].Title)
}

// A stub lookup (e.g. issued from the chapter-fetch path, which only
// knows the external id) must never overwrite existing metadata with
// the stub's blank title.
func TestGetOrCreateSeriesID_StubWithEmptyTitleDoesNotOverwriteMetadata(t *testing.T) {
	store := newFakeStore()
	store.seriesBySourceExternal[key("plugin-a", "ext-1")] = "series-123"
	store.series["series-123"] = storage.SeriesInsert{ID: "series-123", Title: "Original Title"}
	resolver := identity.New(store)

	id, err := resolver.GetOrCreateSeriesID(context.Background(), "plugin-a", "ext-1", pluginhost.Media{
		ID:    "ext-1",
		Kind:  pluginhost.MediaManga,
		Title: "",
	})
	require.NoError(t, err)
	assert.Equal(t, "series-123", id)
	assert.Equal(t, "Original Title", store.series["series-123"].Title)
}

func TestResolveChapterID_TriesCanonicalThenExternal(t *testing.T) {
	store := newFakeStore()
	store.chapterIdentities["chapter-canon"] = [2]string{"chapter-canon", "series-1"}
	store.chapterIdentities["chapter-ext"] = [2]string{"chapter-canon", "series-1"}
	resolver := identity.New(store)

	canonical, seriesID, found, err := resolver.ResolveChapterID(context.Background(), "chapter-canon")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "chapter-canon", canonical)
	assert.Equal(t, "series-1", seriesID)

	canonical, seriesID, found, err = resolver.ResolveChapterID(context.Background(), "chapter-ext")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "chapter-canon", canonical)
	assert.Equal(t, "series-1", seriesID)
}

func TestResolveChapterID_NotFound(t *testing.T) {
	store := newFakeStore()
	resolver := identity.New(store)

	_, _, found, err := resolver.ResolveChapterID(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolveEpisodeID(t *testing.T) {
	store := newFakeStore()
	store.episodesBySource[key("plugin-a", "ep-1")] = "episode-9"
	resolver := identity.New(store)

	id, found, err := resolver.ResolveEpisodeID(context.Background(), "plugin-a", "ep-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "episode-9", id)
}
