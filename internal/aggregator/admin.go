// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator

import (
	"context"
	"time"

	"github.com/5eus/touring/internal/api"
)

/*
ClearCachePrefix deletes every search_cache row whose key starts with
prefix, returning the number of rows removed. An empty prefix clears
the entire table (§4.E).
*/
func (a *Aggregator) ClearCachePrefix(ctx context.Context, prefix string) (int64, error) {
	return a.store.ClearCachePrefix(ctx, prefix)
}

// Vacuum deletes every expired search_cache row.
func (a *Aggregator) Vacuum(ctx context.Context) (int64, error) {
	return a.store.Vacuum(ctx, time.Now().Unix())
}

// ListPlugins reports every plugin's lifecycle state for the admin
// HTTP surface, satisfying [api.AdminService].
func (a *Aggregator) ListPlugins(ctx context.Context) []api.PluginStatus {
	statuses := a.manager.ListPluginStatuses()
	out := make([]api.PluginStatus, len(statuses))
	for i, s := range statuses {
		status := api.PluginStatus{Name: s.Name, State: s.State}
		if s.Err != nil {
			status.Error = s.Err.Error()
		}
		out[i] = status
	}
	return out
}
