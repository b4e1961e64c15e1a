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

// Package decred adapts github.com/decred/dcrd/dcrec/secp256k1/v4. It shares
// the serialization conventions of the btcec module (compressed SEC1 keys,
// SHA-256 pre-hash, DER signatures, x-coordinate ECDH) and is its primary
// cross-library comparison.
package decred

import (
	"crypto/sha256"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	decdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Module drives secp256k1 operations through dcrec.
type Module struct{}

// New returns the decred module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "decred" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.PrivateToPublic, operation.ECDSASign,
		operation.ECDSAVerify, operation.ECDHDerive,
	)
}

func privKey(d types.Bignum) (*secp.PrivateKey, error) {
	v := d.Int()
	if v.Sign() <= 0 || v.Cmp(secp.S256().Params().N) >= 0 {
		return nil, modules.ErrUnsupported
	}
	buf := make([]byte, 32)
	v.FillBytes(buf)
	return secp.PrivKeyFromBytes(buf), nil
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	if op.Algorithm != operation.Secp256k1 {
		return nil, modules.ErrUnsupported
	}
	switch op.Kind {
	case operation.PrivateToPublic:
		priv, err := privKey(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		return types.Bytes(priv.PubKey().SerializeCompressed()), nil

	case operation.ECDSASign:
		priv, err := privKey(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		digest := sha256.Sum256(op.Bytes(1))
		sig := decdsa.Sign(priv, digest[:])
		return types.Bytes(sig.Serialize()), nil

	case operation.ECDSAVerify:
		pub, err := secp.ParsePubKey(op.Bytes(0))
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		var r, s secp.ModNScalar
		rv, sv := op.Bignum(2).Int(), op.Bignum(3).Int()
		if rv.Sign() < 0 || sv.Sign() < 0 || rv.BitLen() > 256 || sv.BitLen() > 256 {
			return types.Bool(false), nil
		}
		buf := make([]byte, 32)
		rv.FillBytes(buf)
		if overflow := r.SetByteSlice(buf); overflow {
			return types.Bool(false), nil
		}
		sv.FillBytes(buf)
		if overflow := s.SetByteSlice(buf); overflow {
			return types.Bool(false), nil
		}
		if r.IsZero() || s.IsZero() {
			return types.Bool(false), nil
		}
		digest := sha256.Sum256(op.Bytes(1))
		sig := decdsa.NewSignature(&r, &s)
		return types.Bool(sig.Verify(digest[:], pub)), nil

	case operation.ECDHDerive:
		priv, err := privKey(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		pub, err := secp.ParsePubKey(op.Bytes(1))
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(secp.GenerateSharedSecret(priv, pub)), nil

	default:
		return nil, modules.ErrUnsupported
	}
}
