// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"context"

	"github.com/tetratelabs/wazero"
)

// NewRuntime builds the single wazero engine shared across every
// plugin (§5: "Engine & epoch counter: shared across all plugins,
// read-only after construction"). WithCloseOnContextDone lets a
// per-call context deadline (§4.C.2) abort an in-flight guest call
// instead of relying on host-side polling.
func NewRuntime(ctx context.Context) wazero.Runtime {
	cfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	return wazero.NewRuntimeWithConfig(ctx, cfg)
}
