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

// Package xdgkdf adapts github.com/xdg-go/pbkdf2, an independent PBKDF2
// implementation cross-checked against the x/crypto one.
package xdgkdf

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"github.com/xdg-go/pbkdf2"
)

// Module derives PBKDF2 keys with xdg-go/pbkdf2.
type Module struct{}

// New returns the xdg-go PBKDF2 module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "xdgkdf" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(operation.PBKDF2)
}

var hashes = map[operation.Algorithm]func() hash.Hash{
	operation.MD5:    md5.New,
	operation.SHA1:   sha1.New,
	operation.SHA224: sha256.New224,
	operation.SHA256: sha256.New,
	operation.SHA384: sha512.New384,
	operation.SHA512: sha512.New,
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	if op.Kind != operation.PBKDF2 {
		return nil, modules.ErrUnsupported
	}
	ctor, ok := hashes[op.Algorithm]
	if !ok {
		return nil, modules.ErrUnsupported
	}
	pass, salt := op.Bytes(0), op.Bytes(1)
	iter, keyLen := int(op.Uint(2)), int(op.Uint(3))
	if iter < 1 || keyLen < 1 {
		return nil, modules.ErrUnsupported
	}
	return types.Bytes(pbkdf2.Key(pass, salt, iter, keyLen, ctor)), nil
}
