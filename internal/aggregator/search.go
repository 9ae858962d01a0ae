// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/pluginmanager"
	"github.com/5eus/touring/internal/storage"
	"github.com/5eus/touring/pkg/normalize"
)

/*
Search runs a per-source cached search across every loaded plugin
(§4.E). For each plugin, in stable name order: a cache hit is decoded
and yielded as-is; a miss dispatches to that one plugin with the raw
(unnormalized) query — the plugin may tokenize further than
[normalize.Query] does — and the result is written through under the
normalized-query key with searchTTLSecs.

kind == MediaAnime forces every result's Kind to Anime, matching the
original's "anime plugins may answer with whatever mediatype they
want, the cache key and the caller both assume Anime" rule. When
autoPersist is set (the CLI default; UI preview searches pass false),
every result also folds its (source, external id) into a canonical
series row via Identity.
*/
func (a *Aggregator) Search(ctx context.Context, kind pluginhost.MediaKind, query string, refresh, autoPersist bool) ([]pluginmanager.NamedMedia, error) {
	normalized := normalize.Query(query)
	now := time.Now().Unix()

	var out []pluginmanager.NamedMedia
	for _, source := range a.manager.ListPlugins() {
		key := storage.SearchCacheKey(source, string(kind), normalized)

		medias, err := a.searchOneSource(ctx, source, kind, query, key, now, refresh)
		if err != nil {
			a.logger.Warn("search_source_failed", slog.String("source", source), slog.Any("error", err))
			continue
		}

		if kind == pluginhost.MediaAnime {
			for i := range medias {
				medias[i].Kind = pluginhost.MediaAnime
			}
		}

		if autoPersist {
			if err := a.persistSearchResults(ctx, source, medias); err != nil {
				a.logger.Warn("search_persist_failed", slog.String("source", source), slog.Any("error", err))
			}
		}

		for _, m := range medias {
			out = append(out, pluginmanager.NamedMedia{Source: source, Media: m})
		}
	}
	return out, nil
}

func (a *Aggregator) searchOneSource(ctx context.Context, source string, kind pluginhost.MediaKind, rawQuery, key string, now int64, refresh bool) ([]pluginhost.Media, error) {
	if !refresh {
		payload, hit, err := a.store.GetCache(ctx, key, now)
		if err != nil {
			return nil, err
		}
		if hit {
			var medias []pluginhost.Media
			if err := json.Unmarshal([]byte(payload), &medias); err == nil {
				return medias, nil
			}
		}
	}

	medias, err := a.manager.SearchMediaFor(ctx, source, kind, rawQuery)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(medias)
	if err == nil {
		if err := a.store.PutCache(ctx, key, string(payload), now+a.searchTTLSecs); err != nil {
			a.logger.Warn("search_cache_write_failed", slog.String("source", source), slog.Any("error", err))
		}
	}
	return medias, nil
}

func (a *Aggregator) persistSearchResults(ctx context.Context, source string, medias []pluginhost.Media) error {
	if len(medias) == 0 {
		return nil
	}
	if err := a.store.UpsertSource(ctx, storage.SourceInsert{ID: source, Version: "unknown"}); err != nil {
		return err
	}
	for _, m := range medias {
		if _, err := a.identity.GetOrCreateSeriesID(ctx, source, m.ID, m); err != nil {
			return err
		}
	}
	return nil
}
