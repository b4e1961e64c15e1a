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

package xcrypto

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"

	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// kdfHashes is the PRF set for the hash-parameterized KDFs. It spans both
// the stdlib SHA family and this module's own digests, so PBKDF2 here
// overlaps the xdgkdf module on the common hashes.
var kdfHashes = map[operation.Algorithm]func() hash.Hash{
	operation.MD5:    md5.New,
	operation.SHA1:   sha1.New,
	operation.SHA224: sha256.New224,
	operation.SHA256: sha256.New,
	operation.SHA384: sha512.New384,
	operation.SHA512: sha512.New,
}

func init() {
	for alg, ctor := range hashes {
		kdfHashes[alg] = ctor
	}
}

func (m *Module) kdf(op *operation.Operation) (types.Value, error) {
	switch op.Kind {
	case operation.PBKDF2:
		ctor, ok := kdfHashes[op.Algorithm]
		if !ok {
			return nil, modules.ErrUnsupported
		}
		pass, salt := op.Bytes(0), op.Bytes(1)
		iter, keyLen := int(op.Uint(2)), int(op.Uint(3))
		return types.Bytes(pbkdf2.Key(pass, salt, iter, keyLen, ctor)), nil

	case operation.Scrypt:
		pass, salt := op.Bytes(0), op.Bytes(1)
		n, r, p, keyLen := int(op.Uint(2)), int(op.Uint(3)), int(op.Uint(4)), int(op.Uint(5))
		dk, err := scrypt.Key(pass, salt, n, r, p, keyLen)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(dk), nil

	case operation.HKDF:
		ctor, ok := kdfHashes[op.Algorithm]
		if !ok {
			return nil, modules.ErrUnsupported
		}
		ikm, salt, info := op.Bytes(0), op.Bytes(1), op.Bytes(2)
		dk := make([]byte, op.Uint(3))
		if _, err := io.ReadFull(hkdf.New(ctor, ikm, salt, info), dk); err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(dk), nil

	case operation.Argon2:
		pass, salt := op.Bytes(0), op.Bytes(1)
		time, memory := uint32(op.Uint(2)), uint32(op.Uint(3))
		threads, keyLen := uint8(op.Uint(4)), uint32(op.Uint(5))
		// The library requires memory >= 8*threads KiB and panics below it.
		if time == 0 || threads == 0 || memory < 8*uint32(threads) {
			return nil, modules.ErrUnsupported
		}
		switch op.Algorithm {
		case operation.Argon2i:
			return types.Bytes(argon2.Key(pass, salt, time, memory, threads, keyLen)), nil
		case operation.Argon2id:
			return types.Bytes(argon2.IDKey(pass, salt, time, memory, threads, keyLen)), nil
		default:
			return nil, modules.ErrUnsupported
		}

	default:
		return nil, modules.ErrUnsupported
	}
}
