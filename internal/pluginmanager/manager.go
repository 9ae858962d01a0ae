// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pluginmanager implements the Plugin Manager (component D):
directory discovery, the fan-out search dispatch, and the first-hit
fetch dispatch used for chapters, episodes, chapter images, and
episode streams.
*/
package pluginmanager

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"golang.org/x/sync/errgroup"

	"github.com/5eus/touring/internal/pluginhost"
)

// NamedMedia pairs a search result with the plugin that produced it.
type NamedMedia struct {
	Source string
	Media  pluginhost.Media
}

// NamedCapabilities pairs a plugin name with its capabilities.
type NamedCapabilities struct {
	Source       string
	Capabilities pluginhost.ProviderCapabilities
}

// NamedHosts pairs a plugin name with its configured allow-list.
type NamedHosts struct {
	Source string
	Hosts  []string
}

// pluginHandle is the subset of *[pluginhost.Plugin]'s surface the
// Manager depends on. Tests substitute a fake implementation to pin
// dispatch ordering without a real wazero sandbox behind it.
type pluginHandle interface {
	Name() string
	FetchMediaList(ctx context.Context, kind pluginhost.MediaKind, query string) ([]pluginhost.Media, error)
	FetchUnits(ctx context.Context, mediaID string) ([]pluginhost.Unit, error)
	FetchAssets(ctx context.Context, unitID string) ([]pluginhost.Asset, error)
	GetCapabilities(ctx context.Context, refresh bool) (pluginhost.ProviderCapabilities, error)
	AllowedHosts(ctx context.Context) ([]string, error)
	State() string
	LoadError() error
	Shutdown(ctx context.Context)
}

// Manager owns every loaded plugin slot plus the engine and epoch
// ticker they share (§5: "read-only after construction").
type Manager struct {
	dir     string
	runtime wazero.Runtime
	epoch   *pluginhost.EpochTicker
	logger  *slog.Logger

	mu      sync.RWMutex
	plugins []pluginHandle // sorted by name
}

// New discovers dir's plugins and builds a [Manager]. The shared
// wazero runtime and epoch ticker are constructed here once and handed
// to every [pluginhost.Plugin].
func New(ctx context.Context, dir string, logger *slog.Logger) (*Manager, error) {
	rt := pluginhost.NewRuntime(ctx)
	epoch := pluginhost.NewEpochTicker()

	m := &Manager{dir: dir, runtime: rt, epoch: epoch, logger: logger}

	plugins, err := m.load(ctx)
	if err != nil {
		epoch.Stop()
		return nil, err
	}
	m.plugins = plugins
	return m, nil
}

func (m *Manager) load(ctx context.Context) ([]pluginHandle, error) {
	entries, err := discover(m.dir)
	if err != nil {
		return nil, err
	}

	plugins := make([]pluginHandle, 0, len(entries))
	for _, d := range entries {
		plugins = append(plugins, pluginhost.NewPlugin(d.name, d.set, d.config, m.runtime, m.epoch, m.logger))
	}
	return plugins, nil
}

// ListPlugins returns every loaded plugin's name in dispatch order.
func (m *Manager) ListPlugins() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.plugins))
	for i, p := range m.plugins {
		names[i] = p.Name()
	}
	return names
}

// NamedStatus reports one plugin slot's lifecycle state for admin
// introspection (§12: capability cache refresh semantics' sibling, the
// plugin-status surface the distilled spec never names explicitly).
type NamedStatus struct {
	Name  string
	State string
	Err   error
}

// ListPluginStatuses reports every plugin's current lifecycle state.
func (m *Manager) ListPluginStatuses() []NamedStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]NamedStatus, len(m.plugins))
	for i, p := range m.plugins {
		out[i] = NamedStatus{Name: p.Name(), State: p.State(), Err: p.LoadError()}
	}
	return out
}

// GetCapabilities returns every plugin's capabilities. Per-plugin
// failures are logged and omitted rather than failing the whole call.
func (m *Manager) GetCapabilities(ctx context.Context, refresh bool) []NamedCapabilities {
	m.mu.RLock()
	plugins := append([]pluginHandle(nil), m.plugins...)
	m.mu.RUnlock()

	out := make([]NamedCapabilities, 0, len(plugins))
	for _, p := range plugins {
		caps, err := p.GetCapabilities(ctx, refresh)
		if err != nil {
			m.logger.Warn("get_capabilities_failed", slog.String("plugin", p.Name()), slog.Any("error", err))
			continue
		}
		out = append(out, NamedCapabilities{Source: p.Name(), Capabilities: caps})
	}
	return out
}

// GetAllowedHosts returns every plugin's configured allow-list.
func (m *Manager) GetAllowedHosts(ctx context.Context) []NamedHosts {
	m.mu.RLock()
	plugins := append([]pluginHandle(nil), m.plugins...)
	m.mu.RUnlock()

	out := make([]NamedHosts, 0, len(plugins))
	for _, p := range plugins {
		hosts, err := p.AllowedHosts(ctx)
		if err != nil {
			m.logger.Warn("get_allowed_hosts_failed", slog.String("plugin", p.Name()), slog.Any("error", err))
			continue
		}
		out = append(out, NamedHosts{Source: p.Name(), Hosts: hosts})
	}
	return out
}

/*
SearchMediaWithSources fans out a search to every loaded plugin
concurrently, waits for each with its own configured timeout, and
aggregates successful results. A per-plugin error is logged and
swallowed — fan-out never fails globally (§4.D).

Results are sorted by source name for stable externally-facing output
(§5: fan-out aggregation is deterministic only in membership, not
sequence).
*/
func (m *Manager) SearchMediaWithSources(ctx context.Context, kind pluginhost.MediaKind, query string) []NamedMedia {
	m.mu.RLock()
	plugins := append([]pluginHandle(nil), m.plugins...)
	m.mu.RUnlock()

	results := make([][]NamedMedia, len(plugins))
	group, gctx := errgroup.WithContext(ctx)
	for i, p := range plugins {
		i, p := i, p
		group.Go(func() error {
			medias, err := p.FetchMediaList(gctx, kind, query)
			if err != nil {
				m.logger.Warn("search_media_failed", slog.String("plugin", p.Name()), slog.Any("error", err))
				return nil
			}
			named := make([]NamedMedia, len(medias))
			for j, media := range medias {
				named[j] = NamedMedia{Source: p.Name(), Media: media}
			}
			results[i] = named
			return nil
		})
	}
	_ = group.Wait()

	var out []NamedMedia
	for _, r := range results {
		out = append(out, r...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// SearchMediaFor dispatches a search to exactly one named plugin.
// Returns an empty slice if the plugin is unknown.
func (m *Manager) SearchMediaFor(ctx context.Context, source string, kind pluginhost.MediaKind, query string) ([]pluginhost.Media, error) {
	p := m.find(source)
	if p == nil {
		return nil, nil
	}
	return p.FetchMediaList(ctx, kind, query)
}

/*
FetchUnitsFirstHit iterates plugins in name order and returns the first
plugin whose fetchUnits result contains a non-empty filtered list,
short-circuiting the remaining plugins (§4.D). filterKind selects
Chapter for manga or Episode for anime.
*/
func (m *Manager) FetchUnitsFirstHit(ctx context.Context, mediaID string, filterKind pluginhost.UnitKind) (string, []pluginhost.Unit, bool) {
	m.mu.RLock()
	plugins := append([]pluginHandle(nil), m.plugins...)
	m.mu.RUnlock()

	for _, p := range plugins {
		units, err := p.FetchUnits(ctx, mediaID)
		if err != nil {
			m.logger.Warn("fetch_units_failed", slog.String("plugin", p.Name()), slog.Any("error", err))
			continue
		}
		filtered := filterUnits(units, filterKind)
		if len(filtered) > 0 {
			return p.Name(), filtered, true
		}
	}
	return "", nil, false
}

// FetchAssetsFirstHit is the asset-kind analogue of
// [Manager.FetchUnitsFirstHit], used for chapter images (Page|Image)
// and episode streams (Video).
func (m *Manager) FetchAssetsFirstHit(ctx context.Context, unitID string, filterKinds ...pluginhost.AssetKind) (string, []pluginhost.Asset, bool) {
	m.mu.RLock()
	plugins := append([]pluginHandle(nil), m.plugins...)
	m.mu.RUnlock()

	for _, p := range plugins {
		assets, err := p.FetchAssets(ctx, unitID)
		if err != nil {
			m.logger.Warn("fetch_assets_failed", slog.String("plugin", p.Name()), slog.Any("error", err))
			continue
		}
		filtered := filterAssets(assets, filterKinds)
		if len(filtered) > 0 {
			return p.Name(), filtered, true
		}
	}
	return "", nil, false
}

// Reload discovers dir's plugins afresh and atomically swaps them in.
// In-flight workers on the previous set continue to completion; new
// requests route to the new set.
func (m *Manager) Reload(ctx context.Context) error {
	plugins, err := m.load(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	old := m.plugins
	m.plugins = plugins
	m.mu.Unlock()

	for _, p := range old {
		p.Shutdown(ctx)
	}
	return nil
}

// Shutdown drops the shared epoch ticker and closes every plugin
// worker and the engine itself.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	plugins := m.plugins
	m.plugins = nil
	m.mu.Unlock()

	for _, p := range plugins {
		p.Shutdown(ctx)
	}
	m.epoch.Stop()
	_ = m.runtime.Close(ctx)
}

func (m *Manager) find(name string) pluginHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func filterUnits(units []pluginhost.Unit, kind pluginhost.UnitKind) []pluginhost.Unit {
	out := make([]pluginhost.Unit, 0, len(units))
	for _, u := range units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

func filterAssets(assets []pluginhost.Asset, kinds []pluginhost.AssetKind) []pluginhost.Asset {
	out := make([]pluginhost.Asset, 0, len(assets))
	for _, a := range assets {
		for _, k := range kinds {
			if a.Kind == k {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
