// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5eus/touring/internal/platform/constants"
	"github.com/5eus/touring/internal/pluginhost"
)

func writeTempToml(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadPluginConfig_DefaultsWhenKeysOmitted(t *testing.T) {
	path := writeTempToml(t, "")

	cfg, err := pluginhost.LoadPluginConfig(path)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultRateLimit, cfg.RateLimit())
	assert.Equal(t, constants.DefaultCallTimeout, cfg.CallTimeout())
	assert.Nil(t, cfg.Hosts())
}

func TestLoadPluginConfig_OverridesAndUnrecognizedKeysIgnored(t *testing.T) {
	path := writeTempToml(t, `
allowed_hosts = ["example.com", "*.cdn.example.net"]
rate_limit_ms = 500
call_timeout_ms = 20000
some_future_key = "ignored"
`)

	cfg, err := pluginhost.LoadPluginConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.RateLimit())
	assert.Equal(t, 20*time.Second, cfg.CallTimeout())
	assert.Equal(t, []string{"example.com", "*.cdn.example.net"}, cfg.Hosts())
}

func TestLoadPluginConfig_EmptyAllowedHostsMutes(t *testing.T) {
	path := writeTempToml(t, `allowed_hosts = []`)

	cfg, err := pluginhost.LoadPluginConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Hosts())
	assert.Empty(t, cfg.Hosts())
}
