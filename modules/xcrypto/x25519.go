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
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"golang.org/x/crypto/curve25519"
)

// scalarBytes maps the bignum private operand onto a 32-byte X25519 scalar
// (big-endian fill; the library applies its own clamping).
func scalarBytes(priv types.Bignum) ([]byte, error) {
	if priv.Sign() < 0 || priv.Int().BitLen() > 8*curve25519.ScalarSize {
		return nil, modules.ErrUnsupported
	}
	out := make([]byte, curve25519.ScalarSize)
	priv.Int().FillBytes(out)
	return out, nil
}

func (m *Module) privateToPublic(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	if op.Algorithm != operation.X25519 {
		return nil, modules.ErrUnsupported
	}
	scalar, err := scalarBytes(op.Bignum(0))
	if err != nil {
		return nil, err
	}
	// Two equivalent paths: the fixed-basepoint specialization and the
	// generic scalar multiplication against the basepoint encoding.
	if alt, _ := mod.GetBool(); alt {
		pub, err := curve25519.X25519(scalar, curve25519.Basepoint)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(pub), nil
	}
	var dst, in [32]byte
	copy(in[:], scalar)
	curve25519.ScalarBaseMult(&dst, &in)
	return types.Bytes(dst[:]), nil
}

func (m *Module) ecdh(op *operation.Operation) (types.Value, error) {
	if op.Algorithm != operation.X25519 {
		return nil, modules.ErrUnsupported
	}
	scalar, err := scalarBytes(op.Bignum(0))
	if err != nil {
		return nil, err
	}
	peer := op.Bytes(1)
	if len(peer) != curve25519.PointSize {
		return nil, modules.ErrUnsupported
	}
	shared, err := curve25519.X25519(scalar, peer)
	if err != nil {
		// Low-order peer point.
		return nil, modules.ErrUnsupported
	}
	return types.Bytes(shared), nil
}
