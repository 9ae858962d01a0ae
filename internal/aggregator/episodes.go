// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator

import (
	"context"
	"log/slog"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
)

/*
FetchEpisodeStreams dispatches to the Plugin Manager's first-hit Video
assets for episodeKey, and — when the answering source resolves to a
canonical episode row via (source, external_id) — persists the
streams, deduped on (episode_id, url) (§4.E). The Assets are always
returned to the caller, persisted or not.
*/
func (a *Aggregator) FetchEpisodeStreams(ctx context.Context, episodeKey string) ([]pluginhost.Asset, error) {
	source, assets, ok := a.manager.FetchAssetsFirstHit(ctx, episodeKey, pluginhost.AssetVideo)
	if !ok {
		return nil, nil
	}

	canonicalID, found, err := a.identity.ResolveEpisodeID(ctx, source, episodeKey)
	if err != nil {
		a.logger.Warn("resolve_episode_id_failed", slog.String("source", source), slog.String("episode_key", episodeKey), slog.Any("error", err))
		return assets, nil
	}
	if !found {
		return assets, nil
	}

	streams := make([]storage.StreamInsert, 0, len(assets))
	for _, asset := range assets {
		var mime *string
		if asset.Mime != "" {
			mime = &asset.Mime
		}
		streams = append(streams, storage.StreamInsert{EpisodeID: canonicalID, URL: asset.URL, Mime: mime})
	}
	if err := a.store.UpsertStreams(ctx, streams); err != nil {
		a.logger.Warn("upsert_streams_failed", slog.String("episode_id", canonicalID), slog.Any("error", err))
	}

	return assets, nil
}
