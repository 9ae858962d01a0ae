// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost

import "runtime"

// ArtifactSet is the pair of candidate binaries discovered for one
// plugin stem. Either may be empty if that variant wasn't present on
// disk, but at least one MUST be non-empty for the stem to be accepted.
type ArtifactSet struct {
	WasmPath  string // portable .wasm
	CwasmPath string // precompiled .cwasm
}

// Primary and Fallback select which artifact to try first per §4.C's
// platform policy: precompiled preferred on desktop/iOS, portable
// preferred on Android. The non-preferred artifact becomes the
// fallback, tried only if the primary fails to instantiate.
func (a ArtifactSet) Primary() string {
	if runtime.GOOS == "android" {
		if a.WasmPath != "" {
			return a.WasmPath
		}
		return a.CwasmPath
	}
	if a.CwasmPath != "" {
		return a.CwasmPath
	}
	return a.WasmPath
}

func (a ArtifactSet) Fallback() string {
	primary := a.Primary()
	if primary == a.WasmPath && a.CwasmPath != "" {
		return a.CwasmPath
	}
	if primary == a.CwasmPath && a.WasmPath != "" {
		return a.WasmPath
	}
	return ""
}
