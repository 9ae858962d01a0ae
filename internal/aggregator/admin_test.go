// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/aggregator"
	"github.com/5eus/touring/internal/pluginmanager"
)

func TestClearCachePrefix_DelegatesToStore(t *testing.T) {
	store := newFakeStore()
	store.cache["search|a"] = cacheRow{payload: "1", expiresAt: 9_999_999_999}
	store.cache["search|b"] = cacheRow{payload: "1", expiresAt: 9_999_999_999}
	store.cache["all|pages|x"] = cacheRow{payload: "1", expiresAt: 9_999_999_999}
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	n, err := agg.ClearCachePrefix(context.Background(), "search|")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, stillThere := store.cache["all|pages|x"]
	assert.True(t, stillThere)
}

func TestVacuum_DelegatesToStore(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	_, err := agg.Vacuum(context.Background())
	require.NoError(t, err)
}

type statusManager struct {
	*fakeManager
	statuses []pluginmanager.NamedStatus
}

func (m *statusManager) ListPluginStatuses() []pluginmanager.NamedStatus { return m.statuses }

func TestListPlugins_MapsStatusAndError(t *testing.T) {
	store := newFakeStore()
	base := newFakeManager("alpha", "beta")
	manager := &statusManager{
		fakeManager: base,
		statuses: []pluginmanager.NamedStatus{
			{Name: "alpha", State: "READY"},
			{Name: "beta", State: "LOAD_FAILED", Err: errors.New("sandbox init failed")},
		},
	}
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	out := agg.ListPlugins(context.Background())
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0].Name)
	assert.Equal(t, "READY", out[0].State)
	assert.Empty(t, out[0].Error)
	assert.Equal(t, "beta", out[1].Name)
	assert.Equal(t, "LOAD_FAILED", out[1].State)
	assert.Equal(t, "sandbox init failed", out[1].Error)
}
