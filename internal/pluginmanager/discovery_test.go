// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginmanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644))
}

func TestDiscover_RejectsStemsMissingConfig(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "no_config.wasm")

	found, err := discover(dir)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscover_AcceptsAndSortsByName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zeta.wasm")
	touch(t, dir, "zeta.toml")
	touch(t, dir, "alpha.cwasm")
	touch(t, dir, "alpha.toml")

	found, err := discover(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "alpha", found[0].name)
	assert.Equal(t, "zeta", found[1].name)
}

func TestDiscover_GroupsBothArtifactsUnderOneStem(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "both.wasm")
	touch(t, dir, "both.cwasm")
	touch(t, dir, "both.toml")

	found, err := discover(dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.NotEmpty(t, found[0].set.WasmPath)
	assert.NotEmpty(t, found[0].set.CwasmPath)
}

func TestDiscover_MissingDirectoryReturnsEmpty(t *testing.T) {
	found, err := discover(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, found)
}
