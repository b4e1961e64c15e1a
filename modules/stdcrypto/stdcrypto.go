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

// Package stdcrypto adapts the Go standard library crypto packages: SHA-2
// family and legacy digests, HMAC, AES in CTR and GCM modes, and Ed25519
// public key derivation.
package stdcrypto

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/internal/chunk"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// Module computes symmetric primitives with the Go standard library.
type Module struct{}

// New returns the standard library module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "stdcrypto" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.Digest, operation.HMAC,
		operation.CipherEncrypt, operation.CipherDecrypt,
		operation.PrivateToPublic,
	)
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
	switch op.Kind {
	case operation.Digest:
		ctor, ok := hashes[op.Algorithm]
		if !ok {
			return nil, modules.ErrUnsupported
		}
		return digest(ctor(), op.Bytes(0), mod), nil
	case operation.HMAC:
		ctor, ok := hashes[op.Algorithm]
		if !ok {
			return nil, modules.ErrUnsupported
		}
		return digest(hmac.New(ctor, op.Bytes(0)), op.Bytes(1), mod), nil
	case operation.CipherEncrypt:
		return m.encrypt(op, mod)
	case operation.CipherDecrypt:
		return m.decrypt(op, mod)
	case operation.PrivateToPublic:
		return m.privateToPublic(op)
	default:
		return nil, modules.ErrUnsupported
	}
}

// digest feeds msg into h across the modifier-chosen chunk boundaries.
func digest(h hash.Hash, msg []byte, mod *datasource.Datasource) types.Bytes {
	for _, c := range chunk.Split(msg, mod) {
		h.Write(c)
	}
	return types.Bytes(h.Sum(nil))
}

func (m *Module) privateToPublic(op *operation.Operation) (types.Value, error) {
	if op.Algorithm != operation.Ed25519 {
		return nil, modules.ErrUnsupported
	}
	priv := op.Bignum(0)
	if priv.Sign() < 0 || priv.Int().BitLen() > 8*ed25519.SeedSize {
		return nil, modules.ErrUnsupported
	}
	seed := make([]byte, ed25519.SeedSize)
	priv.Int().FillBytes(seed)
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	return types.Bytes(pub), nil
}
