// Copyright 2025 The go-cryptodiff Authors
// This file is part of the go-cryptodiff library.
//
// The go-cryptodiff library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-cryptodiff library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-cryptodiff library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/naoina/toml"

	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/builtin"
)

// Config selects the modules to load and where divergence reports land.
type Config struct {
	// Modules restricts the registry to the named modules. Empty means all.
	Modules []string
	// ReportDir receives one canonical CBOR report per divergence. Empty
	// disables report files; the report still goes to stderr.
	ReportDir string
	// Verbosity: "trace", "debug", "info", "warn" or "error".
	Verbosity string
}

const defaultConfig = `Modules = []
ReportDir = ""
Verbosity = "info"`

// loadConfig reads the TOML config at path, or the built-in defaults when
// path is empty.
func loadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path == "" {
		if err := toml.Unmarshal([]byte(defaultConfig), cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return cfg, nil
}

// buildRegistry assembles the configured module subset.
func buildRegistry(cfg *Config) (*modules.Registry, error) {
	all := builtin.Registry()
	if len(cfg.Modules) == 0 {
		return all, nil
	}
	byName := make(map[string]modules.Module)
	for _, m := range all.Modules() {
		byName[m.Name()] = m
	}
	var selected []modules.Module
	for _, name := range cfg.Modules {
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown module %q", name)
		}
		selected = append(selected, m)
	}
	return modules.NewRegistry(selected...)
}
