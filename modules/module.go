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

// Package modules defines the contract between the engine and the library
// adapters, and the registry holding the loaded adapters.
package modules

import (
	"errors"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// ErrUnsupported is the canonical "no result": the module declines the input
// combination. Declining is a normal, frequent outcome, not a bug; it only
// removes the module from the current comparison set. Any other error a
// handler returns is treated the same way by the executor, but
// ErrUnsupported skips the warning log.
var ErrUnsupported = errors.New("modules: operation not supported")

// Module is a capability provider backed by one cryptographic library.
//
// Implementations are constructed once at process start, are stateless with
// respect to individual operations and must be safely re-entrant: the
// executor invokes the same module repeatedly within one iteration. Handlers
// must not mutate their operands (the operand types hand out copies to make
// that hard) and must return an error rather than panic for inputs they do
// not support, including mathematically undefined ones.
//
// The mod datasource wraps the operation's modifier bytes. It is advisory
// only: a module may consume it to pick among internally equivalent
// computation strategies (one-shot vs chunked hashing, alternate modexp
// paths) and ignoring it is always valid. When the modifier runs out the
// module falls back to its default strategy.
type Module interface {
	// Name is the stable human-readable identifier used in divergence
	// reports.
	Name() string

	// Capabilities is the static set of operation kinds the module claims
	// to implement. The engine never infers capability by trial and error.
	Capabilities() operation.KindSet

	// Run computes the operation, or returns an error to decline.
	Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error)
}
