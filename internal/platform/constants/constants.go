// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared between
layers of the aggregator.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the admin/health HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs for that same server.
  - Plugin Host Defaults: the §4.C tunables plugin.toml may override.

Using this package ensures magic strings and magic numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "touring"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// and the statement_timeout applied to every pooled connection.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting (admin/health HTTP surface)

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schema

const (
	SchemaCore = "core"
)

// # Plugin Host Defaults (§4.C)

const (
	// DefaultRateLimit is the minimum spacing between two calls into the
	// same plugin, used when plugin.toml omits rate_limit_ms.
	DefaultRateLimit = 150 * time.Millisecond

	// DefaultCallTimeout bounds a single plugin call, used when
	// plugin.toml omits call_timeout_ms.
	DefaultCallTimeout = 15 * time.Second

	// SlowCallWarnThreshold is the wall-clock duration past which a
	// plugin call is logged as slow but not aborted.
	SlowCallWarnThreshold = 5 * time.Second

	// RetryBackoff is the pause between the first failed attempt and the
	// single retry §4.C.3 allows.
	RetryBackoff = 200 * time.Millisecond

	// EpochTick is the period of the shared epoch ticker (§4.F).
	EpochTick = 10 * time.Millisecond

	// EpochIdleTicks re-arms a plugin's deadline far enough out that it
	// never trips while the plugin is idle between calls.
	EpochIdleTicks uint64 = 1_000_000_000

	// PluginCommandBufferSize is the bounded channel capacity between a
	// plugin's callers and its dedicated worker (§5).
	PluginCommandBufferSize = 64
)

// # Cache TTL Defaults (§4.E, §6)

const (
	DefaultSearchTTLSecs int64 = 3600
	DefaultPagesTTLSecs  int64 = 86400
)
