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

func TestFetchChapterImages_UnmappedKeyUsesItselfAsExternalID(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	manager.assetsFirstHit = "alpha"
	manager.assetsBySource["alpha"] = []pluginhost.Asset{
		{URL: "https://example.test/p1.jpg", Kind: pluginhost.AssetPage},
		{URL: "https://example.test/p2.jpg", Kind: pluginhost.AssetPage},
	}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	urls, err := agg.FetchChapterImages(context.Background(), "ch-ext-1", false)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://example.test/p1.jpg", urls[0])

	key := storage.PagesCacheKey("ch-ext-1")
	_, ok := store.cache[key]
	assert.True(t, ok, "must write through under the canonical (here, fallback) id")
}

func TestFetchChapterImages_ResolvesDualIDAndDispatchesWithExternal(t *testing.T) {
	store := newFakeStore()
	store.chapterFetchInfo["ch-key"] = [3]string{"canonical-1", "alpha", "external-1"}
	manager := newFakeManager("alpha")
	manager.assetsFirstHit = "alpha"
	manager.assetsBySource["alpha"] = []pluginhost.Asset{{URL: "https://example.test/p1.jpg", Kind: pluginhost.AssetPage}}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	urls, err := agg.FetchChapterImages(context.Background(), "ch-key", false)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "external-1", manager.assetsUnitID, "must dispatch with the external id")

	key := storage.PagesCacheKey("canonical-1")
	_, ok := store.cache[key]
	assert.True(t, ok, "must cache under the canonical id, not the external id")
}

func TestFetchChapterImages_CacheHitSkipsDispatch(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	key := storage.PagesCacheKey("ch-ext-1")
	store.cache[key] = cacheRow{payload: `["https://cached.test/p1.jpg"]`, expiresAt: 9_999_999_999}

	urls, err := agg.FetchChapterImages(context.Background(), "ch-ext-1", false)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "https://cached.test/p1.jpg", urls[0])
}
