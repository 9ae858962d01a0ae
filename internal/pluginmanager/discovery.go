// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginmanager

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/5eus/touring/internal/pluginhost"
)

// discovered is one accepted plugin stem: its artifact set and parsed
// config, ready to be turned into a [pluginhost.Plugin].
type discovered struct {
	name   string
	set    pluginhost.ArtifactSet
	config pluginhost.PluginConfig
}

// discover scans dir for plugin artifact pairs, groups them by stem,
// rejects any stem missing its sibling <stem>.toml, and returns the
// accepted set sorted by name for deterministic dispatch order (§4.D).
func discover(dir string) ([]discovered, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sets := map[string]*pluginhost.ArtifactSet{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)

		switch ext {
		case ".wasm":
			set := sets[stem]
			if set == nil {
				set = &pluginhost.ArtifactSet{}
				sets[stem] = set
			}
			set.WasmPath = filepath.Join(dir, name)
		case ".cwasm":
			set := sets[stem]
			if set == nil {
				set = &pluginhost.ArtifactSet{}
				sets[stem] = set
			}
			set.CwasmPath = filepath.Join(dir, name)
		}
	}

	var names []string
	for stem := range sets {
		names = append(names, stem)
	}
	sort.Strings(names)

	out := make([]discovered, 0, len(names))
	for _, stem := range names {
		tomlPath := filepath.Join(dir, stem+".toml")
		if _, err := os.Stat(tomlPath); err != nil {
			continue
		}
		cfg, err := pluginhost.LoadPluginConfig(tomlPath)
		if err != nil {
			continue
		}
		out = append(out, discovered{name: stem, set: *sets[stem], config: cfg})
	}
	return out, nil
}
