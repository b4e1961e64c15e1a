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

//go:build gofuzz
// +build gofuzz

// Package engine is the go-fuzz entrypoint for the differential engine: one
// input, one decoded operation, every loaded library module, panic on the
// first disagreement.
package engine

import (
	"github.com/cryptodiff/go-cryptodiff/core"
	"github.com/cryptodiff/go-cryptodiff/modules/builtin"
)

var driver = core.NewDriver(builtin.Registry())

// Fuzz decodes data into one operation and cross-checks every capable
// module. It returns 1 when at least one module computed a concrete result,
// and panics on divergence so the harness keeps the input.
func Fuzz(data []byte) int {
	return driver.Fuzz(data)
}
