// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/pluginhost"
)

func TestEpochTicker_StartsAtOne(t *testing.T) {
	ticker := pluginhost.NewEpochTicker()
	defer ticker.Stop()

	assert.Equal(t, uint64(1), ticker.Now())
}

func TestEpochTicker_DeadlineForRoundsUpToWholeTicks(t *testing.T) {
	ticker := pluginhost.NewEpochTicker()
	defer ticker.Stop()

	deadline := ticker.DeadlineFor(15 * time.Millisecond)
	// 15ms over a 10ms tick rounds up to 2 ticks.
	assert.Equal(t, ticker.Now()+2, deadline)
}

func TestEpochTicker_QuantizedTimeoutMatchesTickGranularity(t *testing.T) {
	ticker := pluginhost.NewEpochTicker()
	defer ticker.Stop()

	quantized := ticker.QuantizedTimeout(25 * time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, quantized)
}

func TestEpochTicker_AdvancesOverWallClock(t *testing.T) {
	ticker := pluginhost.NewEpochTicker()
	defer ticker.Stop()

	start := ticker.Now()
	time.Sleep(35 * time.Millisecond)
	require.Greater(t, ticker.Now(), start)
}
