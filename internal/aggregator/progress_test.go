// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/aggregator"
	"github.com/5eus/touring/pkg/pagination"
)

func TestGetSeriesDownloadPath_NoPreferenceReturnsNil(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	path, err := agg.GetSeriesDownloadPath(context.Background(), "series-1")
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestListSeries_UsesOffsetFromParams(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	_, err := agg.ListSeries(context.Background(), "Manga", pagination.Params{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, store.listLimit)
	assert.Equal(t, 20, store.listOffset)
}

func TestDeleteSeries_DelegatesToStore(t *testing.T) {
	store := newFakeStore()
	manager := newFakeManager("alpha")
	identity := &fakeIdentity{}
	agg := aggregator.New(store, manager, identity, 3600, 86400, discardLogger())

	_, err := agg.DeleteSeries(context.Background(), "series-1")
	require.NoError(t, err)
}
