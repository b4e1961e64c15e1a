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

// Package btcec adapts github.com/btcsuite/btcd/btcec/v2 for secp256k1.
//
// Conventions shared by every secp256k1 module so their outputs line up:
// public keys serialize as 33-byte compressed SEC1, signatures are signed
// over the SHA-256 digest of the message and serialize as DER, and ECDH
// yields the 32-byte x coordinate of the shared point. Private scalars
// outside [1, N-1] are declined.
package btcec

import (
	"crypto/sha256"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"

	"github.com/btcsuite/btcd/btcec/v2"
	becdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Module drives secp256k1 operations through btcec.
type Module struct{}

// New returns the btcec module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "btcec" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.PrivateToPublic, operation.ECDSASign,
		operation.ECDSAVerify, operation.ECDHDerive,
	)
}

// privKey validates the scalar operand and loads it as a btcec private key.
func privKey(d types.Bignum) (*btcec.PrivateKey, error) {
	v := d.Int()
	if v.Sign() <= 0 || v.Cmp(btcec.S256().Params().N) >= 0 {
		return nil, modules.ErrUnsupported
	}
	buf := make([]byte, 32)
	v.FillBytes(buf)
	priv, _ := btcec.PrivKeyFromBytes(buf)
	return priv, nil
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
		sig := becdsa.Sign(priv, digest[:])
		return types.Bytes(sig.Serialize()), nil

	case operation.ECDSAVerify:
		pub, err := btcec.ParsePubKey(op.Bytes(0))
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		var r, s btcec.ModNScalar
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
		sig := becdsa.NewSignature(&r, &s)
		return types.Bool(sig.Verify(digest[:], pub)), nil

	case operation.ECDHDerive:
		priv, err := privKey(op.Bignum(0))
		if err != nil {
			return nil, err
		}
		pub, err := btcec.ParsePubKey(op.Bytes(1))
		if err != nil {
			return nil, modules.ErrUnsupported
		}
		return types.Bytes(btcec.GenerateSharedSecret(priv, pub)), nil

	default:
		return nil, modules.ErrUnsupported
	}
}
