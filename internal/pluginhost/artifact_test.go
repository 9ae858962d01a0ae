// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5eus/touring/internal/pluginhost"
)

func TestArtifactSet_PrimaryPrefersPrecompiledOffAndroid(t *testing.T) {
	if runtime.GOOS == "android" {
		t.Skip("platform policy inverts on android")
	}

	set := pluginhost.ArtifactSet{WasmPath: "p.wasm", CwasmPath: "p.cwasm"}
	assert.Equal(t, "p.cwasm", set.Primary())
	assert.Equal(t, "p.wasm", set.Fallback())
}

func TestArtifactSet_FallsBackWhenOnlyOneArtifactPresent(t *testing.T) {
	set := pluginhost.ArtifactSet{WasmPath: "p.wasm"}
	assert.Equal(t, "p.wasm", set.Primary())
	assert.Equal(t, "", set.Fallback())
}
