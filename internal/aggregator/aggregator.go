// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package aggregator implements the Aggregator (component E): the single
façade that wraps the Plugin Manager and Storage and exposes the
narrow, synchronous-feeling API an embedder (CLI, HTTP admin surface,
or a future UI layer) calls against.

It owns nothing the Plugin Manager or Storage don't already own —
every method here composes calls to those two collaborators plus the
Identity resolver, following the same narrow-façade shape as the
original's Touring struct in lib.rs.
*/
package aggregator

import (
	"context"
	"log/slog"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/pluginmanager"
	"github.com/5eus/touring/internal/storage"
)

// Store is the subset of the storage façade the aggregator depends on.
type Store interface {
	GetCache(ctx context.Context, key string, now int64) (string, bool, error)
	PutCache(ctx context.Context, key, payload string, expiresAt int64) error
	ClearCachePrefix(ctx context.Context, prefix string) (int64, error)
	Vacuum(ctx context.Context, now int64) (int64, error)

	UpsertSource(ctx context.Context, src storage.SourceInsert) error

	FindChapterIDByMapping(ctx context.Context, seriesID, sourceID, externalID string) (string, bool, error)
	UpsertChapter(ctx context.Context, c storage.ChapterInsert) error
	FindEpisodeIDByMapping(ctx context.Context, seriesID, sourceID, externalID string) (string, bool, error)
	UpsertEpisode(ctx context.Context, e storage.EpisodeInsert) error
	FindChapterFetchInfo(ctx context.Context, key string) (canonicalID, sourceID, externalID string, found bool, err error)

	UpsertChapterImages(ctx context.Context, images []storage.ChapterImageInsert) error
	UpsertStreams(ctx context.Context, streams []storage.StreamInsert) error

	UpsertChapterProgress(ctx context.Context, p storage.ChapterProgress) error
	ClearChapterProgress(ctx context.Context, chapterID string) error
	GetChapterProgress(ctx context.Context, chapterID string) (storage.ChapterProgress, bool, error)
	GetChapterProgressForSeries(ctx context.Context, seriesID string) ([]storage.ChapterProgress, error)

	GetSeriesPref(ctx context.Context, seriesID string) (storage.SeriesPref, error)
	SetSeriesDownloadPath(ctx context.Context, seriesID string, path *string) error

	ListSeries(ctx context.Context, kind string, limit, offset int) ([]storage.SeriesSummary, error)
	ListChaptersForSeries(ctx context.Context, seriesID string) ([]storage.UnitSummary, error)
	ListEpisodesForSeries(ctx context.Context, seriesID string) ([]storage.UnitSummary, error)
	DeleteSeries(ctx context.Context, seriesID string) (int64, error)
	DeleteChapter(ctx context.Context, chapterID string) (int64, error)
	DeleteEpisode(ctx context.Context, episodeID string) (int64, error)
}

// Manager is the subset of the Plugin Manager the aggregator depends on.
type Manager interface {
	ListPlugins() []string
	ListPluginStatuses() []pluginmanager.NamedStatus
	GetCapabilities(ctx context.Context, refresh bool) []pluginmanager.NamedCapabilities
	GetAllowedHosts(ctx context.Context) []pluginmanager.NamedHosts
	SearchMediaFor(ctx context.Context, source string, kind pluginhost.MediaKind, query string) ([]pluginhost.Media, error)
	FetchUnitsFirstHit(ctx context.Context, mediaID string, filterKind pluginhost.UnitKind) (string, []pluginhost.Unit, bool)
	FetchAssetsFirstHit(ctx context.Context, unitID string, filterKinds ...pluginhost.AssetKind) (string, []pluginhost.Asset, bool)
}

// Identity is the subset of the identity resolver the aggregator depends on.
type Identity interface {
	GetOrCreateSeriesID(ctx context.Context, source, externalID string, media pluginhost.Media) (string, error)
	ResolveEpisodeID(ctx context.Context, sourceID, key string) (canonicalID string, found bool, err error)
}

// Aggregator wraps the Plugin Manager, Storage, and Identity resolver
// behind the operations listed in §4.E.
type Aggregator struct {
	store    Store
	manager  Manager
	identity Identity
	logger   *slog.Logger

	searchTTLSecs int64
	pagesTTLSecs  int64
}

// New constructs an [Aggregator]. searchTTLSecs/pagesTTLSecs come from
// config.Config's SEARCH_TTL_SECS/PAGES_TTL_SECS (§6).
func New(store Store, manager Manager, identity Identity, searchTTLSecs, pagesTTLSecs int64, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:         store,
		manager:       manager,
		identity:      identity,
		logger:        logger,
		searchTTLSecs: searchTTLSecs,
		pagesTTLSecs:  pagesTTLSecs,
	}
}

// PluginNames returns every loaded plugin's name.
func (a *Aggregator) PluginNames() []string {
	return a.manager.ListPlugins()
}

// GetCapabilities returns every plugin's capabilities, refreshing the
// cached value per plugin when refresh is true (§12).
func (a *Aggregator) GetCapabilities(ctx context.Context, refresh bool) []pluginmanager.NamedCapabilities {
	return a.manager.GetCapabilities(ctx, refresh)
}

// GetAllowedHosts returns every plugin's configured allow-list.
func (a *Aggregator) GetAllowedHosts(ctx context.Context) []pluginmanager.NamedHosts {
	return a.manager.GetAllowedHosts(ctx)
}
