// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"sync/atomic"
	"time"

	"github.com/5eus/touring/internal/platform/constants"
)

// EpochTicker is the single process-wide tick counter behind plugin
// CPU deadlines (§4.F). A plugin call's deadline is its call_timeout
// rounded up to whole ticks ([EpochTicker.QuantizedTimeout]) and is
// enforced by the sandbox engine as a context deadline; the engine
// does not read the counter itself.
type EpochTicker struct {
	tick   atomic.Uint64
	stop   atomic.Bool
	done   chan struct{}
}

// NewEpochTicker starts a background goroutine that increments the
// shared counter every [constants.EpochTick]. Ticks start at 1, never 0.
func NewEpochTicker() *EpochTicker {
	e := &EpochTicker{done: make(chan struct{})}
	e.tick.Store(1)

	go func() {
		defer close(e.done)
		ticker := time.NewTicker(constants.EpochTick)
		defer ticker.Stop()
		for {
			if e.stop.Load() {
				return
			}
			<-ticker.C
			e.tick.Add(1)
		}
	}()

	return e
}

// Now returns the current tick value.
func (e *EpochTicker) Now() uint64 {
	return e.tick.Load()
}

// ticksFor converts a wall-clock duration into a whole number of
// epoch ticks, rounding up so a deadline never expires early.
func ticksFor(d time.Duration) uint64 {
	tickMs := constants.EpochTick.Milliseconds()
	ms := d.Milliseconds()
	return uint64((ms + tickMs - 1) / tickMs)
}

// DeadlineFor computes the tick at which callTimeout should be
// considered expired: ceil(call_timeout_ms / epoch_tick_ms) ticks
// ahead of the current counter.
func (e *EpochTicker) DeadlineFor(callTimeout time.Duration) uint64 {
	return e.Now() + ticksFor(callTimeout)
}

// QuantizedTimeout re-expresses callTimeout as a whole number of epoch
// ticks converted back to a duration, so the context deadline the
// sandbox engine actually enforces lines up with the same tick
// granularity as [EpochTicker.DeadlineFor].
func (e *EpochTicker) QuantizedTimeout(callTimeout time.Duration) time.Duration {
	return time.Duration(ticksFor(callTimeout)) * constants.EpochTick
}

// IdleDeadline re-arms a plugin's deadline far enough into the future
// that it never trips while the plugin sits idle between calls.
func (e *EpochTicker) IdleDeadline() uint64 {
	return e.Now() + constants.EpochIdleTicks
}

// Stop signals the background goroutine to exit and waits for it to do so.
func (e *EpochTicker) Stop() {
	e.stop.Store(true)
	<-e.done
}
