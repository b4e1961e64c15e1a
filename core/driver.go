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

package core

import (
	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/log"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
)

// Driver runs one fuzz iteration: decode an operation from the raw input,
// fan it out, and compare. It holds no state between iterations beyond the
// immutable registry, so one Driver serves any number of inputs.
type Driver struct {
	reg *modules.Registry
}

// NewDriver returns a driver over the given registry.
func NewDriver(reg *modules.Registry) *Driver {
	return &Driver{reg: reg}
}

// Run decodes and executes one operation from data. An input too short to
// form a complete operation ends the iteration with no work and no error.
// The returned divergence, if any, is the fatal finding; executed reports
// how many modules produced a concrete result.
func (d *Driver) Run(data []byte) (div *Divergence, executed int) {
	ds := datasource.New(data)
	op, err := operation.Decode(ds)
	if err != nil {
		// Underflow while decoding: nothing to do for this input.
		return nil, 0
	}
	log.Trace("decoded operation", "kind", op.Kind, "algorithm", op.Algorithm,
		"operands", len(op.Operands), "modifier", len(op.Modifier))

	results, selfDiv := Execute(d.reg, op, ds)
	for _, r := range results {
		if !r.Declined() {
			executed++
		}
	}
	if selfDiv != nil {
		return selfDiv, executed
	}
	return Compare(op, results), executed
}

// Fuzz is the go-fuzz entrypoint contract: it panics on any divergence so
// the harness records the input, and returns 1 when at least one module
// produced a concrete result, steering the corpus toward inputs that decode
// into executable operations.
func (d *Driver) Fuzz(data []byte) int {
	div, executed := d.Run(data)
	if div != nil {
		panic(div.Error())
	}
	if executed > 0 {
		return 1
	}
	return 0
}
