// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"net/url"
	"strings"
)

// AllowList implements §4.C's host allow-list semantics for a single
// plugin's outbound URLs.
type AllowList struct {
	// hosts is nil when unset (no restriction). A non-nil empty slice
	// mutes the plugin: every URL is rejected.
	hosts []string
}

// NewAllowList builds an [AllowList] from a plugin's configured
// allowed_hosts. Patterns are lowercased at construction time.
func NewAllowList(patterns []string) AllowList {
	if patterns == nil {
		return AllowList{hosts: nil}
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return AllowList{hosts: lowered}
}

// Unrestricted reports whether this allow-list has no restriction at
// all (allowed_hosts was unset in plugin.toml).
func (a AllowList) Unrestricted() bool {
	return a.hosts == nil
}

// Muted reports whether this allow-list is the empty-list case — the
// plugin is configured but every outbound operation must return empty.
func (a AllowList) Muted() bool {
	return a.hosts != nil && len(a.hosts) == 0
}

// Allows reports whether rawURL is reachable under this allow-list.
//
// The scheme must be http or https and the host must parse; otherwise
// the URL is rejected regardless of the host list. An entry beginning
// with "*." matches that apex or any subdomain; any other entry must
// match the host exactly.
func (a AllowList) Allows(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	if a.Unrestricted() {
		return schemeOK(rawURL)
	}
	if a.Muted() {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, pattern := range a.hosts {
		if strings.HasPrefix(pattern, "*.") {
			apex := pattern[2:]
			if host == apex || strings.HasSuffix(host, "."+apex) {
				return true
			}
			continue
		}
		if host == pattern {
			return true
		}
	}
	return false
}

func schemeOK(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
