// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"golang.org/x/time/rate"

	"github.com/5eus/touring/internal/platform/apperr"
	"github.com/5eus/touring/internal/platform/constants"
)

// pluginState is the per-slot state machine of §4.C.
type pluginState int32

const (
	stateRegistered pluginState = iota
	stateLoading
	stateReady
	stateLoadFailed
)

func (s pluginState) String() string {
	switch s {
	case stateRegistered:
		return "REGISTERED"
	case stateLoading:
		return "LOADING"
	case stateReady:
		return "READY"
	case stateLoadFailed:
		return "LOAD_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Plugin owns one loaded (or not-yet-loaded) provider: its artifacts,
// its config, and the single worker goroutine that exclusively touches
// its sandbox state. All exported methods are safe to call from any
// goroutine — they only ever talk to the worker over its command
// channel.
type Plugin struct {
	name      string
	artifacts ArtifactSet
	config    PluginConfig
	allowed   AllowList
	runtime   wazero.Runtime
	epoch     *EpochTicker
	logger    *slog.Logger

	cmdCh  chan command
	closed chan struct{}

	// status is published by the worker goroutine and read by any
	// goroutine (e.g. admin introspection); everything else below is
	// worker-owned, touched only inside run(), never the caller.
	status atomic.Value // holds pluginStatus

	state   pluginState
	loadErr error
	comp    *component
	limiter *rate.Limiter
	caps    *ProviderCapabilities
}

// pluginStatus is the immutable snapshot published to status.
type pluginStatus struct {
	state pluginState
	err   error
}

// Name returns the plugin's directory-derived name.
func (p *Plugin) Name() string {
	return p.name
}

// State reports the plugin's current lifecycle state.
func (p *Plugin) State() string {
	return p.status.Load().(pluginStatus).state.String()
}

// LoadError returns the error from the last failed load attempt, if any.
func (p *Plugin) LoadError() error {
	return p.status.Load().(pluginStatus).err
}

func (p *Plugin) publish() {
	p.status.Store(pluginStatus{state: p.state, err: p.loadErr})
}

// NewPlugin constructs a plugin slot in state REGISTERED and starts its
// worker goroutine. The sandbox itself is not instantiated until the
// first command arrives (lazy instantiation, §4.D).
func NewPlugin(name string, artifacts ArtifactSet, config PluginConfig, rt wazero.Runtime, epoch *EpochTicker, logger *slog.Logger) *Plugin {
	p := &Plugin{
		name:      name,
		artifacts: artifacts,
		config:    config,
		allowed:   NewAllowList(config.Hosts()),
		runtime:   rt,
		epoch:     epoch,
		logger:    logger,
		cmdCh:     make(chan command, constants.PluginCommandBufferSize),
		closed:    make(chan struct{}),
		state:     stateRegistered,
		limiter:   rate.NewLimiter(rate.Every(config.RateLimit()), 1),
	}
	p.publish()
	go p.run()
	return p
}

// Shutdown closes the command channel; the worker goroutine exits once
// it drains any commands already enqueued.
func (p *Plugin) Shutdown(ctx context.Context) {
	close(p.cmdCh)
	<-p.closed
	if p.comp != nil {
		_ = p.comp.close(ctx)
	}
}

func (p *Plugin) run() {
	defer close(p.closed)
	for cmd := range p.cmdCh {
		if p.state == stateRegistered {
			p.load(context.Background())
		}
		p.handle(cmd)
	}
}

// load attempts the primary artifact, then the fallback, per §4.C's
// LOADING transition.
func (p *Plugin) load(ctx context.Context) {
	p.state = stateLoading
	p.publish()

	for _, path := range []string{p.artifacts.Primary(), p.artifacts.Fallback()} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			p.loadErr = err
			continue
		}
		comp, err := newComponent(ctx, p.runtime, data)
		if err != nil {
			p.loadErr = err
			continue
		}
		p.comp = comp
		p.state = stateReady
		p.loadErr = nil
		p.publish()
		return
	}

	p.state = stateLoadFailed
	if p.loadErr == nil {
		p.loadErr = errors.New("no usable artifact")
	}
	p.publish()
}

func (p *Plugin) handle(cmd command) {
	defer func() {
		// A guest trap can unwind as a Go panic through wazero's call
		// boundary; convert it into the same PluginCallError shape a
		// returned error would produce rather than crashing the worker.
		if r := recover(); r != nil {
			cmd.reply <- commandResult{err: apperr.PluginCallError(p.name, opName(cmd.kind), errPanic(r))}
		}
	}()

	// A muted allow-list answers every fetch with an empty result
	// without calling into the guest.
	if p.allowed.Muted() && (cmd.kind == cmdFetchMediaList || cmd.kind == cmdFetchUnits || cmd.kind == cmdFetchAssets) {
		cmd.reply <- commandResult{}
		return
	}

	if p.state == stateLoadFailed {
		cmd.reply <- commandResult{err: apperr.PluginLoadError(p.name, p.loadErr)}
		return
	}

	switch cmd.kind {
	case cmdFetchMediaList:
		var medias []Media
		err := p.invoke("fetchMediaList", map[string]any{"kind": cmd.mediaKind, "query": cmd.query}, &medias)
		if err == nil {
			medias = filterMediaURLs(medias, p.allowed)
		}
		cmd.reply <- commandResult{medias: medias, err: err}
	case cmdFetchUnits:
		var units []Unit
		err := p.invoke("fetchUnits", cmd.unitID, &units)
		if err == nil {
			units = filterUnitURLs(units, p.allowed)
		}
		cmd.reply <- commandResult{units: units, err: err}
	case cmdFetchAssets:
		var assets []Asset
		err := p.invoke("fetchAssets", cmd.assetOf, &assets)
		if err == nil {
			assets = filterAssetURLs(assets, p.allowed)
		}
		cmd.reply <- commandResult{assets: assets, err: err}
	case cmdGetCapabilities:
		if p.caps != nil && !cmd.refreshCapabilities {
			cmd.reply <- commandResult{capabilities: *p.caps}
			return
		}
		var caps ProviderCapabilities
		err := p.invoke("getCapabilities", struct{}{}, &caps)
		if err == nil {
			p.caps = &caps
		}
		cmd.reply <- commandResult{capabilities: caps, err: err}
	case cmdGetAllowedHosts:
		cmd.reply <- commandResult{hosts: p.config.Hosts()}
	}
}

// invoke runs the §4.C per-call contract around a single guest export:
// throttle, quantized-epoch deadline, invoke-with-one-retry, slow-call
// warning, then JSON-decode the result into target.
func (p *Plugin) invoke(export string, arg any, target any) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.epoch.QuantizedTimeout(p.config.CallTimeout()))
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return apperr.DeadlineExceeded(p.name, export)
	}

	start := time.Now()
	raw, err := p.comp.call(ctx, export, arg)
	if err != nil {
		time.Sleep(constants.RetryBackoff)
		raw, err = p.comp.call(ctx, export, arg)
	}

	if elapsed := time.Since(start); elapsed > constants.SlowCallWarnThreshold {
		p.logger.Warn("plugin_call_slow",
			slog.String("plugin", p.name),
			slog.String("op", export),
			slog.Duration("elapsed", elapsed),
		)
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperr.DeadlineExceeded(p.name, export)
		}
		return apperr.PluginCallError(p.name, export, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return apperr.PluginCallError(p.name, export, err)
	}
	return nil
}

func opName(kind commandKind) string {
	switch kind {
	case cmdFetchMediaList:
		return "fetchMediaList"
	case cmdFetchUnits:
		return "fetchUnits"
	case cmdFetchAssets:
		return "fetchAssets"
	case cmdGetCapabilities:
		return "getCapabilities"
	case cmdGetAllowedHosts:
		return "getAllowedHosts"
	default:
		return "unknown"
	}
}

func errPanic(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.New("plugin trapped")
}

// # Public dispatch surface

func (p *Plugin) dispatch(ctx context.Context, cmd command) (commandResult, error) {
	// The reply wait is bounded by the plugin's own call_timeout (§5),
	// independent of whatever deadline the caller's ctx carries; the
	// caller's ctx is still honored so a fan-out search can cancel early.
	waitCtx, cancel := context.WithTimeout(ctx, p.config.CallTimeout())
	defer cancel()

	select {
	case p.cmdCh <- cmd:
	case <-ctx.Done():
		return commandResult{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res, nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return commandResult{}, ctx.Err()
		}
		return commandResult{}, apperr.TimeoutError(p.name, opName(cmd.kind))
	}
}

// FetchMediaList calls the plugin's fetchMediaList export.
func (p *Plugin) FetchMediaList(ctx context.Context, kind MediaKind, query string) ([]Media, error) {
	res, err := p.dispatch(ctx, command{kind: cmdFetchMediaList, mediaKind: kind, query: query, reply: make(chan commandResult, 1)})
	if err != nil {
		return nil, err
	}
	return res.medias, res.err
}

// FetchUnits calls the plugin's fetchUnits export.
func (p *Plugin) FetchUnits(ctx context.Context, mediaID string) ([]Unit, error) {
	res, err := p.dispatch(ctx, command{kind: cmdFetchUnits, unitID: mediaID, reply: make(chan commandResult, 1)})
	if err != nil {
		return nil, err
	}
	return res.units, res.err
}

// FetchAssets calls the plugin's fetchAssets export.
func (p *Plugin) FetchAssets(ctx context.Context, unitID string) ([]Asset, error) {
	res, err := p.dispatch(ctx, command{kind: cmdFetchAssets, assetOf: unitID, reply: make(chan commandResult, 1)})
	if err != nil {
		return nil, err
	}
	return res.assets, res.err
}

// GetCapabilities calls the plugin's getCapabilities export, using the
// cached value unless refresh is true.
func (p *Plugin) GetCapabilities(ctx context.Context, refresh bool) (ProviderCapabilities, error) {
	res, err := p.dispatch(ctx, command{kind: cmdGetCapabilities, refreshCapabilities: refresh, reply: make(chan commandResult, 1)})
	if err != nil {
		return ProviderCapabilities{}, err
	}
	return res.capabilities, res.err
}

// AllowedHosts returns the plugin's configured allow-list, unfiltered.
func (p *Plugin) AllowedHosts(ctx context.Context) ([]string, error) {
	res, err := p.dispatch(ctx, command{kind: cmdGetAllowedHosts, reply: make(chan commandResult, 1)})
	if err != nil {
		return nil, err
	}
	return res.hosts, nil
}

func filterMediaURLs(medias []Media, allowed AllowList) []Media {
	out := make([]Media, 0, len(medias))
	for _, m := range medias {
		if m.URL != "" && !allowed.Allows(m.URL) {
			m.URL = ""
		}
		if m.CoverURL != "" && !allowed.Allows(m.CoverURL) {
			m.CoverURL = ""
		}
		out = append(out, m)
	}
	return out
}

func filterUnitURLs(units []Unit, allowed AllowList) []Unit {
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		if u.URL != "" && !allowed.Allows(u.URL) {
			u.URL = ""
		}
		out = append(out, u)
	}
	return out
}

func filterAssetURLs(assets []Asset, allowed AllowList) []Asset {
	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if allowed.Allows(a.URL) {
			out = append(out, a)
		}
	}
	return out
}
