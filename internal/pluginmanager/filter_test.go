// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5eus/touring/internal/pluginhost"
)

func TestFilterUnits_KeepsOnlyRequestedKind(t *testing.T) {
	units := []pluginhost.Unit{
		{ID: "1", Kind: pluginhost.UnitChapter},
		{ID: "2", Kind: pluginhost.UnitEpisode},
		{ID: "3", Kind: pluginhost.UnitChapter},
	}

	filtered := filterUnits(units, pluginhost.UnitChapter)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)
}

func TestFilterAssets_MatchesAnyOfMultipleKinds(t *testing.T) {
	assets := []pluginhost.Asset{
		{URL: "a", Kind: pluginhost.AssetPage},
		{URL: "b", Kind: pluginhost.AssetVideo},
		{URL: "c", Kind: pluginhost.AssetImage},
		{URL: "d", Kind: pluginhost.AssetOther},
	}

	filtered := filterAssets(assets, []pluginhost.AssetKind{pluginhost.AssetPage, pluginhost.AssetImage})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].URL)
	assert.Equal(t, "c", filtered[1].URL)
}
