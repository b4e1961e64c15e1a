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

// Package core fans a decoded operation out to every capable module and
// compares their results. A divergence here is the finding the whole system
// exists to produce.
package core

import (
	"errors"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/log"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// Result is one module's outcome for an operation. A nil Value means the
// module declined; declines never participate in comparison.
type Result struct {
	Module string
	Value  types.Value
}

// Declined reports whether the module produced no concrete value.
func (r Result) Declined() bool { return r.Value == nil }

// invoke runs a single module handler, mapping both its error signal and any
// panic to a decline. Only result mismatches may abort an iteration; a module
// that cannot compute simply drops out of the comparison set.
func invoke(m modules.Module, op *operation.Operation, modifier []byte) (res Result) {
	res = Result{Module: m.Name()}
	defer func() {
		if r := recover(); r != nil {
			log.Debug("module panicked, treating as decline",
				"module", res.Module, "kind", op.Kind, "panic", r)
			res.Value = nil
		}
	}()
	v, err := m.Run(op, datasource.New(modifier))
	if err != nil {
		if !errors.Is(err, modules.ErrUnsupported) {
			log.Warn("module returned unexpected error",
				"module", res.Module, "kind", op.Kind, "err", err)
		}
		return res
	}
	res.Value = v
	return res
}

// Execute dispatches op to every registered module whose capability set
// contains op.Kind, in registry order. Each module reads the strategy
// modifier through its own datasource, so one module's consumption never
// skews another's.
//
// When ds still holds bytes, a second modifier is drawn from it and every
// module that produced a concrete result is invoked again. The two runs
// exercise different internal strategies of the same library and must agree;
// a mismatch is reported as a self-divergence before any cross-module
// comparison, pinning the bug inside a single library.
func Execute(reg *modules.Registry, op *operation.Operation, ds *datasource.Datasource) ([]Result, *Divergence) {
	capable := reg.Capable(op.Kind)
	results := make([]Result, 0, len(capable))
	for _, m := range capable {
		results = append(results, invoke(m, op, op.Modifier))
	}

	second, err := ds.GetBytes(maxRecheckModifier)
	if err != nil {
		return results, nil
	}
	for i, m := range capable {
		if results[i].Declined() {
			continue
		}
		again := invoke(m, op, second)
		if again.Declined() {
			// A strategy switch may step outside the module's supported
			// domain; that is a decline, not a self-divergence.
			continue
		}
		if !equalCanonical(op.Kind, results[i].Value, again.Value) {
			return results, &Divergence{
				Op:   op,
				Self: m.Name(),
				Results: []Result{
					{Module: m.Name(), Value: results[i].Value},
					{Module: m.Name() + " (recheck)", Value: again.Value},
				},
			}
		}
	}
	return results, nil
}

// maxRecheckModifier bounds the second, self-differential modifier drawn
// from the iteration datasource.
const maxRecheckModifier = 64
