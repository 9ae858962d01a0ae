// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginmanager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/pluginhost"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePlugin is a minimal pluginHandle stand-in: no wazero sandbox, no
// artifacts, just canned responses and a call counter per export.
type fakePlugin struct {
	name string

	units      []pluginhost.Unit
	unitsErr   error
	unitsCalls int

	assets      []pluginhost.Asset
	assetsErr   error
	assetsCalls int

	medias []pluginhost.Media
}

func (f *fakePlugin) Name() string { return f.name }

func (f *fakePlugin) FetchMediaList(ctx context.Context, kind pluginhost.MediaKind, query string) ([]pluginhost.Media, error) {
	return f.medias, nil
}

func (f *fakePlugin) FetchUnits(ctx context.Context, mediaID string) ([]pluginhost.Unit, error) {
	f.unitsCalls++
	return f.units, f.unitsErr
}

func (f *fakePlugin) FetchAssets(ctx context.Context, unitID string) ([]pluginhost.Asset, error) {
	f.assetsCalls++
	return f.assets, f.assetsErr
}

func (f *fakePlugin) GetCapabilities(ctx context.Context, refresh bool) (pluginhost.ProviderCapabilities, error) {
	return pluginhost.ProviderCapabilities{}, nil
}

func (f *fakePlugin) AllowedHosts(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakePlugin) State() string                                     { return "READY" }
func (f *fakePlugin) LoadError() error                                  { return nil }
func (f *fakePlugin) Shutdown(ctx context.Context)                      {}

/*
TestFetchUnitsFirstHit_StopsAtFirstNonEmptyResult pins §4.D's
first-hit dispatch: alpha sorts before bravo, both have non-empty
chapter results, but only alpha must ever be called.
*/
func TestFetchUnitsFirstHit_StopsAtFirstNonEmptyResult(t *testing.T) {
	alpha := &fakePlugin{name: "alpha", units: []pluginhost.Unit{
		{ID: "c1", Kind: pluginhost.UnitChapter},
	}}
	bravo := &fakePlugin{name: "bravo", units: []pluginhost.Unit{
		{ID: "c2", Kind: pluginhost.UnitChapter},
	}}
	m := &Manager{plugins: []pluginHandle{alpha, bravo}}

	source, units, ok := m.FetchUnitsFirstHit(context.Background(), "manga-1", pluginhost.UnitChapter)

	require.True(t, ok)
	assert.Equal(t, "alpha", source)
	require.Len(t, units, 1)
	assert.Equal(t, "c1", units[0].ID)

	assert.Equal(t, 1, alpha.unitsCalls)
	assert.Equal(t, 0, bravo.unitsCalls, "bravo must never be queried once alpha answers first")
}

// TestFetchUnitsFirstHit_SkipsEmptyAndErroringPlugins checks that a
// plugin returning no matching units (or erroring) falls through to
// the next one instead of short-circuiting.
func TestFetchUnitsFirstHit_SkipsEmptyAndErroringPlugins(t *testing.T) {
	alpha := &fakePlugin{name: "alpha", unitsErr: errors.New("boom")}
	alphaEmpty := &fakePlugin{name: "alpha-empty", units: []pluginhost.Unit{
		{ID: "c9", Kind: pluginhost.UnitChapter},
	}}
	bravo := &fakePlugin{name: "bravo", units: []pluginhost.Unit{
		{ID: "e1", Kind: pluginhost.UnitEpisode},
	}}
	charlie := &fakePlugin{name: "charlie", units: []pluginhost.Unit{
		{ID: "e2", Kind: pluginhost.UnitEpisode},
	}}
	m := &Manager{plugins: []pluginHandle{alpha, alphaEmpty, bravo, charlie}, logger: discardLogger()}

	source, units, ok := m.FetchUnitsFirstHit(context.Background(), "anime-1", pluginhost.UnitEpisode)

	require.True(t, ok)
	assert.Equal(t, "bravo", source)
	require.Len(t, units, 1)
	assert.Equal(t, "e1", units[0].ID)

	assert.Equal(t, 1, alpha.unitsCalls)
	assert.Equal(t, 1, alphaEmpty.unitsCalls)
	assert.Equal(t, 1, bravo.unitsCalls)
	assert.Equal(t, 0, charlie.unitsCalls, "charlie must never be queried once bravo answers first")
}

// TestFetchUnitsFirstHit_NoPluginMatchesReturnsFalse checks the
// all-empty case reports no winner rather than an empty first plugin.
func TestFetchUnitsFirstHit_NoPluginMatchesReturnsFalse(t *testing.T) {
	alpha := &fakePlugin{name: "alpha"}
	m := &Manager{plugins: []pluginHandle{alpha}, logger: discardLogger()}

	source, units, ok := m.FetchUnitsFirstHit(context.Background(), "manga-1", pluginhost.UnitChapter)

	assert.False(t, ok)
	assert.Empty(t, source)
	assert.Nil(t, units)
}

/*
TestFetchAssetsFirstHit_StopsAtFirstNonEmptyResult is the asset-kind
analogue of TestFetchUnitsFirstHit_StopsAtFirstNonEmptyResult.
*/
func TestFetchAssetsFirstHit_StopsAtFirstNonEmptyResult(t *testing.T) {
	alpha := &fakePlugin{name: "alpha", assets: []pluginhost.Asset{
		{URL: "a1", Kind: pluginhost.AssetPage},
	}}
	bravo := &fakePlugin{name: "bravo", assets: []pluginhost.Asset{
		{URL: "a2", Kind: pluginhost.AssetPage},
	}}
	m := &Manager{plugins: []pluginHandle{alpha, bravo}}

	source, assets, ok := m.FetchAssetsFirstHit(context.Background(), "chapter-1", pluginhost.AssetPage, pluginhost.AssetImage)

	require.True(t, ok)
	assert.Equal(t, "alpha", source)
	require.Len(t, assets, 1)
	assert.Equal(t, "a1", assets[0].URL)
	assert.Equal(t, 0, bravo.assetsCalls, "bravo must never be queried once alpha answers first")
}
