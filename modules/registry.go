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

package modules

import (
	"fmt"

	"github.com/cryptodiff/go-cryptodiff/operation"
)

// Registry is the immutable, ordered set of loaded modules. Iteration order
// is the registration order and is stable across runs, so a recorded input
// replays against the same module sequence. The engine draws no correctness
// guarantee from the order; results are compared as an unordered set.
type Registry struct {
	mods []Module
}

// NewRegistry builds a registry from the given modules in order. Duplicate
// names are rejected since divergence reports key on them.
func NewRegistry(mods ...Module) (*Registry, error) {
	seen := make(map[string]bool, len(mods))
	for _, m := range mods {
		if seen[m.Name()] {
			return nil, fmt.Errorf("modules: duplicate module %q", m.Name())
		}
		seen[m.Name()] = true
	}
	r := &Registry{mods: make([]Module, len(mods))}
	copy(r.mods, mods)
	return r, nil
}

// Modules returns the modules in registration order.
func (r *Registry) Modules() []Module {
	out := make([]Module, len(r.mods))
	copy(out, r.mods)
	return out
}

// Capable returns, in registration order, the modules whose capability set
// contains kind.
func (r *Registry) Capable(kind operation.Kind) []Module {
	var out []Module
	for _, m := range r.mods {
		if m.Capabilities().Has(kind) {
			out = append(out, m)
		}
	}
	return out
}

// Len reports the number of loaded modules.
func (r *Registry) Len() int { return len(r.mods) }
