// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/aggregator"
	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
)

func TestFetchChapters_NewMappingMintsUUID(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.unitsFirstHit = "alpha"
	manager.unitsBySource["alpha"] = []pluginhost.Unit{
		{ID: "c1", Title: "Chapter 1", Kind: pluginhost.UnitChapter, NumberText: "1", Lang: "en", UploadGroup: "Scans Inc"},
	}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	units, err := agg.FetchChapters(context.Background(), "manga-ext-1", true)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, 1, identity.createCalls)

	var found storage.ChapterInsert
	for _, c := range store.chapters {
		found = c
	}
	assert.Equal(t, "alpha", found.SourceID)
	assert.Equal(t, "c1", found.ExternalID)
	assert.NotEmpty(t, found.ID)
	require.NotNil(t, found.Lang)
	assert.Equal(t, "en", *found.Lang)
	require.NotNil(t, found.UploadGroup)
	assert.Equal(t, "Scans Inc", *found.UploadGroup)
}

func TestFetchChapters_ExistingMappingReusesID(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.unitsFirstHit = "alpha"
	manager.unitsBySource["alpha"] = []pluginhost.Unit{
		{ID: "c1", Title: "Chapter 1", Kind: pluginhost.UnitChapter},
	}
	identity := &fakeIdentity{seriesBySourceExternal: map[string]string{"alpha|manga-ext-1": "series-existing"}}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())
	store.chapters["chapter-existing"] = storage.ChapterInsert{
		ID: "chapter-existing", SeriesID: "series-existing", SourceID: "alpha", ExternalID: "c1",
	}

	_, err := agg.FetchChapters(context.Background(), "manga-ext-1", true)
	require.NoError(t, err)

	assert.Len(t, store.chapters, 1, "existing mapping must be reused, not duplicated")
	_, ok := store.chapters["chapter-existing"]
	assert.True(t, ok)
}

func TestFetchChapters_AutoPersistFalseSkipsWrites(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.unitsFirstHit = "alpha"
	manager.unitsBySource["alpha"] = []pluginhost.Unit{
		{ID: "c1", Title: "Chapter 1", Kind: pluginhost.UnitChapter},
	}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	units, err := agg.FetchChapters(context.Background(), "manga-ext-1", false)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Empty(t, store.chapters)
	assert.Equal(t, 0, identity.createCalls)
}

func TestFetchChapters_NoPluginAnswersReturnsEmpty(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	units, err := agg.FetchChapters(context.Background(), "manga-ext-1", true)
	require.NoError(t, err)
	assert.Nil(t, units)
}

func TestFetchEpisodes_NewMappingMintsUUID(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.unitsFirstHit = "alpha"
	manager.unitsBySource["alpha"] = []pluginhost.Unit{
		{ID: "e1", Title: "Episode 1", Kind: pluginhost.UnitEpisode, Lang: "ja"},
	}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	units, err := agg.FetchEpisodes(context.Background(), "anime-ext-1", true)
	require.NoError(t, err)
	require.Len(t, units, 1)

	var found storage.EpisodeInsert
	for _, e := range store.episodes {
		found = e
	}
	assert.Equal(t, "alpha", found.SourceID)
	assert.Equal(t, "e1", found.ExternalID)
	require.NotNil(t, found.Lang)
	assert.Equal(t, "ja", *found.Lang)
}
