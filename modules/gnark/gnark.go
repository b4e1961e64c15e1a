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

// Package gnark adapts github.com/consensys/gnark-crypto's secp256k1 curve
// arithmetic. The library exposes raw affine points rather than SEC1 codecs,
// so encoding and decoding are done here. Its ECDSA signer draws fresh
// randomness per call and cannot be reproduced across modules, so ECDSASign
// is not offered; verification and key derivation are.
package gnark

import (
	"crypto/sha256"
	"math/big"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	gecdsa "github.com/consensys/gnark-crypto/ecc/secp256k1/ecdsa"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fr"
)

// Module drives secp256k1 operations through gnark-crypto.
type Module struct{}

// New returns the gnark module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "gnark" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.PrivateToPublic, operation.ECDSAVerify, operation.ECDHDerive,
	)
}

func scalar(d types.Bignum) (*big.Int, error) {
	v := d.Int()
	if v.Sign() <= 0 || v.Cmp(fr.Modulus()) >= 0 {
		return nil, modules.ErrUnsupported
	}
	return v, nil
}

// compress serializes p as 33-byte compressed SEC1.
func compress(p *secp256k1.G1Affine) []byte {
	out := make([]byte, 1+fp.Bytes)
	y := p.Y.BigInt(new(big.Int))
	out[0] = byte(2 + y.Bit(0))
	x := p.X.Bytes()
	copy(out[1:], x[:])
	return out
}

// fieldElem strictly decodes a 32-byte big-endian field element, rejecting
// values at or above the field modulus (SetBytes alone would reduce them).
func fieldElem(b []byte) (fp.Element, bool) {
	var e fp.Element
	if new(big.Int).SetBytes(b).Cmp(fp.Modulus()) >= 0 {
		return e, false
	}
	e.SetBytes(b)
	return e, true
}

// decompress parses a compressed or uncompressed SEC1 point. Hybrid and
// infinity encodings are rejected.
func decompress(b []byte) (*secp256k1.G1Affine, error) {
	var p secp256k1.G1Affine
	switch {
	case len(b) == 1+fp.Bytes && (b[0] == 2 || b[0] == 3):
		x, ok := fieldElem(b[1:])
		if !ok {
			return nil, modules.ErrUnsupported
		}
		// y^2 = x^3 + 7
		var ySq, seven fp.Element
		seven.SetUint64(7)
		ySq.Square(&x).Mul(&ySq, &x).Add(&ySq, &seven)
		var y fp.Element
		if y.Sqrt(&ySq) == nil {
			return nil, modules.ErrUnsupported
		}
		if y.BigInt(new(big.Int)).Bit(0) != uint(b[0]&1) {
			y.Neg(&y)
		}
		p.X, p.Y = x, y
		return &p, nil

	case len(b) == 1+2*fp.Bytes && b[0] == 4:
		x, okX := fieldElem(b[1 : 1+fp.Bytes])
		y, okY := fieldElem(b[1+fp.Bytes:])
		if !okX || !okY {
			return nil, modules.ErrUnsupported
		}
		p.X, p.Y = x, y
		if !p.IsOnCurve() || p.IsInfinity() {
			return nil, modules.ErrUnsupported
		}
		return &p, nil

	default:
		return nil, modules.ErrUnsupported
	}
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	if op.Algorithm != operation.Secp256k1 {
		return nil, modules.ErrUnsupported
	}
	switch op.Kind {
	case operation.PrivateToPublic:
		d, err := scalar(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		var p secp256k1.G1Affine
		p.ScalarMultiplicationBase(d)
		return types.Bytes(compress(&p)), nil

	case operation.ECDSAVerify:
		peer, err := decompress(op.Bytes(0))
		if err != nil {
			return nil, err
		}
		rv, sv := op.Bignum(2).Int(), op.Bignum(3).Int()
		if rv.Sign() <= 0 || sv.Sign() <= 0 ||
			rv.Cmp(fr.Modulus()) >= 0 || sv.Cmp(fr.Modulus()) >= 0 {
			return types.Bool(false), nil
		}
		var sig gecdsa.Signature
		rv.FillBytes(sig.R[:])
		sv.FillBytes(sig.S[:])
		pub := gecdsa.PublicKey{A: *peer}
		digest := sha256.Sum256(op.Bytes(1))
		// A nil hasher means the message is taken as the digest itself.
		ok, err := pub.Verify(sig.Bytes(), digest[:], nil)
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bool(ok), nil

	case operation.ECDHDerive:
		d, err := scalar(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		peer, err := decompress(op.Bytes(1))
		if err != nil {
			return nil, err
		}
		var shared secp256k1.G1Affine
		shared.ScalarMultiplication(peer, d)
		if shared.IsInfinity() {
			return nil, modules.ErrUnsupported
		}
		x := shared.X.Bytes()
		return types.Bytes(x[:]), nil

	default:
		return nil, modules.ErrUnsupported
	}
}
