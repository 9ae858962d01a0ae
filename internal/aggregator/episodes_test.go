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
)

func TestFetchEpisodeStreams_ResolvedPersistsStreams(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.assetsFirstHit = "alpha"
	manager.assetsBySource["alpha"] = []pluginhost.Asset{
		{URL: "https://example.test/stream.m3u8", Mime: "application/x-mpegURL", Kind: pluginhost.AssetVideo},
	}
	identity := &fakeIdentity{resolvedEpisodeID: "episode-1", resolvedEpisodeFound: true}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	assets, err := agg.FetchEpisodeStreams(context.Background(), "ep-ext-1")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.Len(t, store.streams, 1)
	assert.Equal(t, "episode-1", store.streams[0].EpisodeID)
	assert.Equal(t, "https://example.test/stream.m3u8", store.streams[0].URL)
}

func TestFetchEpisodeStreams_UnresolvedStillReturnsAssets(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.assetsFirstHit = "alpha"
	manager.assetsBySource["alpha"] = []pluginhost.Asset{
		{URL: "https://example.test/stream.m3u8", Kind: pluginhost.AssetVideo},
	}
	identity := &fakeIdentity{resolvedEpisodeFound: false}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	assets, err := agg.FetchEpisodeStreams(context.Background(), "ep-ext-1")
	require.NoError(t, err)
	require.Len(t, assets, 1, "assets must be returned even when the episode id cannot be resolved")
	assert.Empty(t, store.streams)
}

func TestFetchEpisodeStreams_NoPluginAnswersReturnsNil(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	assets, err := agg.FetchEpisodeStreams(context.Background(), "ep-ext-1")
	require.NoError(t, err)
	assert.Nil(t, assets)
}
