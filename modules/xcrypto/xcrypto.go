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

// Package xcrypto adapts golang.org/x/crypto: the SHA-3/Keccak and BLAKE2
// digests, legacy MD4/RIPEMD-160, the ChaCha20 ciphers, the PBKDF2, scrypt,
// HKDF and Argon2 KDFs, and X25519.
package xcrypto

import (
	"crypto/hmac"
	"hash"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/internal/chunk"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Module computes symmetric primitives and X25519 with golang.org/x/crypto.
type Module struct{}

// New returns the x/crypto module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "xcrypto" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.Digest, operation.HMAC,
		operation.CipherEncrypt, operation.CipherDecrypt,
		operation.PBKDF2, operation.Scrypt, operation.HKDF, operation.Argon2,
		operation.PrivateToPublic, operation.ECDHDerive,
	)
}

var hashes = map[operation.Algorithm]func() hash.Hash{
	operation.MD4:        md4.New,
	operation.RIPEMD160:  ripemd160.New,
	operation.SHA3_256:   sha3.New256,
	operation.SHA3_512:   sha3.New512,
	operation.Keccak256:  sha3.NewLegacyKeccak256,
	operation.Blake2b256: mustHash(blake2b.New256),
	operation.Blake2b512: mustHash(blake2b.New512),
	operation.Blake2s256: mustHash(blake2s.New256),
}

// mustHash adapts the keyed blake2 constructors to plain hash constructors.
// With a nil key they cannot fail.
func mustHash(f func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := f(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
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
		return m.cipher(op, mod, true)
	case operation.CipherDecrypt:
		return m.cipher(op, mod, false)
	case operation.PBKDF2, operation.Scrypt, operation.HKDF, operation.Argon2:
		return m.kdf(op)
	case operation.PrivateToPublic:
		return m.privateToPublic(op, mod)
	case operation.ECDHDerive:
		return m.ecdh(op)
	default:
		return nil, modules.ErrUnsupported
	}
}

func digest(h hash.Hash, msg []byte, mod *datasource.Datasource) types.Bytes {
	for _, c := range chunk.Split(msg, mod) {
		h.Write(c)
	}
	return types.Bytes(h.Sum(nil))
}
