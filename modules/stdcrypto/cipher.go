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

package stdcrypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/internal/chunk"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// cipher operand layout: key, nonce, aad, data. CTR mode has no notion of
// additional data and ignores the aad operand.

func (m *Module) encrypt(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	key, nonce, aad, data := op.Bytes(0), op.Bytes(1), op.Bytes(2), op.Bytes(3)
	switch op.Algorithm {
	case operation.AES128CTR, operation.AES256CTR:
		return m.ctr(key, nonce, data, mod)
	case operation.AES128GCM, operation.AES256GCM:
		gcm, err := m.gcm(key)
		if err != nil {
			return nil, err
		}
		if len(nonce) != gcm.NonceSize() {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(gcm.Seal(nil, nonce, data, aad)), nil
	default:
		return nil, modules.ErrUnsupported
	}
}

func (m *Module) decrypt(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	key, nonce, aad, data := op.Bytes(0), op.Bytes(1), op.Bytes(2), op.Bytes(3)
	switch op.Algorithm {
	case operation.AES128CTR, operation.AES256CTR:
		// CTR decryption is the same keystream XOR.
		return m.ctr(key, nonce, data, mod)
	case operation.AES128GCM, operation.AES256GCM:
		gcm, err := m.gcm(key)
		if err != nil {
			return nil, err
		}
		if len(nonce) != gcm.NonceSize() {
			return nil, modules.ErrUnsupported
		}
		pt, err := gcm.Open(nil, nonce, data, aad)
		if err != nil {
			// Authentication failure on fuzzed ciphertext: not a bug.
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(pt), nil
	default:
		return nil, modules.ErrUnsupported
	}
}

// ctr XORs the keystream over data, processing the modifier-chosen chunks
// through the same stream to exercise the incremental path.
func (m *Module) ctr(key, iv, data []byte, mod *datasource.Datasource) (types.Value, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, modules.ErrUnsupported
	}
	if len(iv) != block.BlockSize() {
		return nil, modules.ErrUnsupported
	}
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, 0, len(data))
	for _, c := range chunk.Split(data, mod) {
		buf := make([]byte, len(c))
		stream.XORKeyStream(buf, c)
		out = append(out, buf...)
	}
	return types.Bytes(out), nil
}

func (m *Module) gcm(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, modules.ErrUnsupported
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, modules.ErrUnsupported
	}
	return gcm, nil
}
