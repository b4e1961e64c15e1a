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

// Package sha256simd adapts github.com/minio/sha256-simd. It only speaks
// SHA-256 but takes assembly paths the standard library does not, making it
// the cross-check for stdcrypto's SHA-256.
package sha256simd

import (
	"crypto/hmac"
	"hash"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/internal/chunk"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	sha256 "github.com/minio/sha256-simd"
)

// Module computes SHA-256 digests with minio/sha256-simd.
type Module struct{}

// New returns the sha256-simd module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "sha256simd" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(operation.Digest, operation.HMAC)
}

// The library exposes only the SHA-256 variant; SHA-224 shares the
// compression function but is not exported, so those operations decline.
var hashes = map[operation.Algorithm]func() hash.Hash{
	operation.SHA256: sha256.New,
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	ctor, ok := hashes[op.Algorithm]
	if !ok {
		return nil, modules.ErrUnsupported
	}
	var h hash.Hash
	switch op.Kind {
	case operation.Digest:
		h = ctor()
		for _, c := range chunk.Split(op.Bytes(0), mod) {
			h.Write(c)
		}
	case operation.HMAC:
		h = hmac.New(ctor, op.Bytes(0))
		for _, c := range chunk.Split(op.Bytes(1), mod) {
			h.Write(c)
		}
	default:
		return nil, modules.ErrUnsupported
	}
	return types.Bytes(h.Sum(nil)), nil
}
