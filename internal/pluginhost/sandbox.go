// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

/*
component wraps one instantiated WASM module implementing a plugin's
export surface (§6): fetchMediaList, fetchUnits, fetchAssets,
getCapabilities.

Host<->guest payloads are JSON strings passed through guest-owned
linear memory: the host asks the guest to alloc(len) bytes, writes the
JSON argument there, calls the export with (ptr, len), and reads the
JSON result back from the (ptr<<32 | len) the export returns. Every
kept teacher HTTP handler marshals through encoding/json the same way;
this is that convention pushed across the process boundary.

The runtime is built with [wazero.RuntimeConfig.WithCloseOnContextDone],
so a call whose context carries a deadline is aborted by the engine
itself rather than by host-side polling — the deadline ctx passed to
[component.call] is derived from the shared epoch ticker quantized to
whole ticks (see [Plugin.invoke]).
*/
type component struct {
	runtime wazero.Runtime
	module  api.Module
}

func newComponent(ctx context.Context, runtime wazero.Runtime, wasmBytes []byte) (*component, error) {
	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}

	mod, err := runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}

	return &component{runtime: runtime, module: mod}, nil
}

func (c *component) call(ctx context.Context, export string, arg any) (json.RawMessage, error) {
	argBytes, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}

	alloc := c.module.ExportedFunction("alloc")
	if alloc == nil {
		return nil, fmt.Errorf("plugin does not export alloc")
	}
	allocRes, err := alloc.Call(ctx, uint64(len(argBytes)))
	if err != nil {
		return nil, err
	}
	argPtr := uint32(allocRes[0])

	if !c.module.Memory().Write(argPtr, argBytes) {
		return nil, fmt.Errorf("failed to write argument into guest memory")
	}

	fn := c.module.ExportedFunction(export)
	if fn == nil {
		return nil, fmt.Errorf("plugin does not export %q", export)
	}

	out, err := fn.Call(ctx, uint64(argPtr), uint64(len(argBytes)))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("plugin export %q returned no value", export)
	}

	packed := out[0]
	resultPtr := uint32(packed >> 32)
	resultLen := uint32(packed)

	data, ok := c.module.Memory().Read(resultPtr, resultLen)
	if !ok {
		return nil, fmt.Errorf("failed to read result from guest memory")
	}
	result := make(json.RawMessage, len(data))
	copy(result, data)
	return result, nil
}

func (c *component) close(ctx context.Context) error {
	return c.module.Close(ctx)
}
