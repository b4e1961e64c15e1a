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
	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/modules/internal/chunk"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

func (m *Module) cipher(op *operation.Operation, mod *datasource.Datasource, encrypt bool) (types.Value, error) {
	key, nonce, aad, data := op.Bytes(0), op.Bytes(1), op.Bytes(2), op.Bytes(3)
	switch op.Algorithm {
	case operation.ChaCha20:
		stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		out := make([]byte, 0, len(data))
		for _, c := range chunk.Split(data, mod) {
			buf := make([]byte, len(c))
			stream.XORKeyStream(buf, c)
			out = append(out, buf...)
		}
		return types.Bytes(out), nil
	case operation.ChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		if len(nonce) != aead.NonceSize() {
			return nil, modules.ErrUnsupported
		}
		if encrypt {
			return types.Bytes(aead.Seal(nil, nonce, data, aad)), nil
		}
		pt, err := aead.Open(nil, nonce, data, aad)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(pt), nil
	default:
		return nil, modules.ErrUnsupported
	}
}
