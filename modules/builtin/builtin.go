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

// Package builtin assembles the default module set. Importing it pulls in
// every backing library, so lean entrypoints can instead register a subset
// by hand.
package builtin

import (
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/bigint"
	"github.com/cryptodiff/go-cryptodiff/modules/btcec"
	"github.com/cryptodiff/go-cryptodiff/modules/decred"
	"github.com/cryptodiff/go-cryptodiff/modules/gnark"
	"github.com/cryptodiff/go-cryptodiff/modules/sha256simd"
	"github.com/cryptodiff/go-cryptodiff/modules/stdcrypto"
	"github.com/cryptodiff/go-cryptodiff/modules/uint256"
	"github.com/cryptodiff/go-cryptodiff/modules/xcrypto"
	"github.com/cryptodiff/go-cryptodiff/modules/xdgkdf"
)

// Registry returns the full default registry. The bigint reference module is
// registered first so reports list it ahead of the modules under test.
func Registry() *modules.Registry {
	r, err := modules.NewRegistry(
		bigint.New(),
		uint256.New(),
		stdcrypto.New(),
		xcrypto.New(),
		sha256simd.New(),
		xdgkdf.New(),
		btcec.New(),
		decred.New(),
		gnark.New(),
	)
	if err != nil {
		panic(err) // unreachable: the built-in names are distinct
	}
	return r
}
