// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity implements Identity mapping (component B): folding a
plugin's (source, external_id) pair into one canonical series id, and
resolving chapter/episode keys that may arrive as either a canonical id
or a plugin's external id.
*/
package identity

import (
	"context"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
	"github.com/5eus/touring/pkg/uuidv7"
)

// Store is the subset of the storage façade the resolver needs.
type Store interface {
	FindSeriesIDBySourceExternal(ctx context.Context, sourceID, externalID string) (string, bool, error)
	UpsertSource(ctx context.Context, src storage.SourceInsert) error
	UpsertSeries(ctx context.Context, series storage.SeriesInsert) error
	UpsertSeriesSource(ctx context.Context, link storage.SeriesSourceInsert) error
	FindChapterIdentity(ctx context.Context, key string) (canonicalID, seriesID string, found bool, err error)
	FindEpisodeIDBySourceExternal(ctx context.Context, sourceID, externalID string) (string, bool, error)
}

// Resolver implements the identity-mapping operations of §4.B.
type Resolver struct {
	store Store
}

// New constructs a [Resolver] over the given storage façade.
func New(store Store) *Resolver {
	return &Resolver{store: store}
}

/*
GetOrCreateSeriesID folds source's (source, externalID) into a
canonical series id.

Description: if a mapping already exists, metadata is only refreshed
when media.Title is non-empty — a stub lookup (e.g. the one issued by
a chapter-fetch path that has no full Media, only an id) must never
clobber good metadata with blanks. Otherwise a fresh series is created
from the stub.
*/
func (r *Resolver) GetOrCreateSeriesID(ctx context.Context, source, externalID string, media pluginhost.Media) (string, error) {
	existing, found, err := r.store.FindSeriesIDBySourceExternal(ctx, source, externalID)
	if err != nil {
		return "", err
	}
	if found {
		if media.Title != "" {
			if err := r.store.UpsertSeries(ctx, seriesInsertFromMedia(existing, media)); err != nil {
				return "", err
			}
		}
		return existing, nil
	}

	newID := uuidv7.New()
	if err := r.store.UpsertSource(ctx, storage.SourceInsert{ID: source, Version: "unknown"}); err != nil {
		return "", err
	}
	if err := r.store.UpsertSeries(ctx, seriesInsertFromMedia(newID, media)); err != nil {
		return "", err
	}
	if err := r.store.UpsertSeriesSource(ctx, storage.SeriesSourceInsert{
		SeriesID: newID, SourceID: source, ExternalID: externalID,
	}); err != nil {
		return "", err
	}
	return newID, nil
}

// ResolveChapterID resolves a chapter key — canonical id or external
// id — to its (canonical_id, series_id) pair.
func (r *Resolver) ResolveChapterID(ctx context.Context, key string) (canonicalID, seriesID string, found bool, err error) {
	return r.store.FindChapterIdentity(ctx, key)
}

// ResolveEpisodeID resolves an episode key to its canonical id, given
// the source that is expected to own it.
func (r *Resolver) ResolveEpisodeID(ctx context.Context, sourceID, key string) (canonicalID string, found bool, err error) {
	return r.store.FindEpisodeIDBySourceExternal(ctx, sourceID, key)
}

func seriesInsertFromMedia(id string, media pluginhost.Media) storage.SeriesInsert {
	kind := string(media.Kind)
	insert := storage.SeriesInsert{ID: id, Kind: kind, Title: media.Title}
	if media.Description != "" {
		insert.Description = &media.Description
	}
	if media.CoverURL != "" {
		insert.CoverURL = &media.CoverURL
	}
	return insert
}
