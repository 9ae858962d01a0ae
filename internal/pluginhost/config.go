// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/5eus/touring/internal/platform/constants"
)

// PluginConfig is the parsed form of a plugin's sibling <stem>.toml.
//
// Every key is optional; zero values fall back to the §4.C defaults in
// [constants].
type PluginConfig struct {
	AllowedHosts *[]string `toml:"allowed_hosts"`
	RateLimitMs  *uint64   `toml:"rate_limit_ms"`
	CallTimeoutMs *uint64  `toml:"call_timeout_ms"`
}

// RateLimit returns the configured throttle spacing, or
// [constants.DefaultRateLimit] if unset.
func (c PluginConfig) RateLimit() time.Duration {
	if c.RateLimitMs == nil {
		return constants.DefaultRateLimit
	}
	return time.Duration(*c.RateLimitMs) * time.Millisecond
}

// CallTimeout returns the configured per-call deadline, or
// [constants.DefaultCallTimeout] if unset.
func (c PluginConfig) CallTimeout() time.Duration {
	if c.CallTimeoutMs == nil {
		return constants.DefaultCallTimeout
	}
	return time.Duration(*c.CallTimeoutMs) * time.Millisecond
}

// Hosts returns the declared allow-list. A nil slice means unset (no
// restriction); a non-nil empty slice means the plugin is muted.
func (c PluginConfig) Hosts() []string {
	if c.AllowedHosts == nil {
		return nil
	}
	return *c.AllowedHosts
}

// LoadPluginConfig parses a plugin's <stem>.toml. Unrecognized keys are
// ignored by [toml.Decode], matching §6's "Unrecognized keys are ignored".
func LoadPluginConfig(path string) (PluginConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PluginConfig{}, err
	}

	var cfg PluginConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return PluginConfig{}, err
	}
	return cfg, nil
}
