// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/5eus/touring/internal/pluginhost"
	"github.com/5eus/touring/internal/storage"
)

/*
FetchChapterImages resolves chapterKey (a canonical id or a plugin's
external id) to the chapter's dual identity, then returns its page
list, caching under the canonical id (§4.E):

 1. Resolve chapterKey via the dual-id DAO lookup; if unmapped, the
    input key stands in for both the canonical and external id.
 2. Cache read under "all|pages|<canonical_id>"; a hit short-circuits.
 3. On miss, dispatch to the Plugin Manager's first-hit variant using
    the external id — never the canonical one, since plugins only
    recognize their own ids — then write the result through under the
    canonical key with pagesTTLSecs.
*/
func (a *Aggregator) FetchChapterImages(ctx context.Context, chapterKey string, refresh bool) ([]string, error) {
	canonicalID, _, externalID, found, err := a.store.FindChapterFetchInfo(ctx, chapterKey)
	if err != nil {
		return nil, err
	}
	if !found {
		canonicalID, externalID = chapterKey, chapterKey
	}

	key := storage.PagesCacheKey(canonicalID)
	now := time.Now().Unix()

	if !refresh {
		payload, hit, err := a.store.GetCache(ctx, key, now)
		if err != nil {
			return nil, err
		}
		if hit {
			var urls []string
			if err := json.Unmarshal([]byte(payload), &urls); err == nil {
				return urls, nil
			}
		}
	}

	_, assets, _ := a.manager.FetchAssetsFirstHit(ctx, externalID, pluginhost.AssetPage, pluginhost.AssetImage)
	urls := make([]string, 0, len(assets))
	for _, asset := range assets {
		urls = append(urls, asset.URL)
	}

	payload, err := json.Marshal(urls)
	if err == nil {
		if err := a.store.PutCache(ctx, key, string(payload), now+a.pagesTTLSecs); err != nil {
			a.logger.Warn("pages_cache_write_failed", slog.String("chapter_id", canonicalID), slog.Any("error", err))
		}
	}
	return urls, nil
}
