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

// Package operation models the closed set of cryptographic operations the
// engine can dispatch, and decodes them from a datasource.
package operation

import (
	"fmt"

	"github.com/cryptodiff/go-cryptodiff/types"
)

// Kind identifies one operation from the closed, build-time enumeration.
type Kind uint32

const (
	// Bignum arithmetic.
	Add Kind = iota
	Sub
	Mul
	Div
	Sqr
	Mod
	ExpMod
	GCD
	AddMod
	SubMod
	MulMod
	SqrMod
	InvMod
	LCM
	Cmp
	Abs
	Neg
	IsEven
	IsOdd

	// Symmetric primitives.
	Digest
	HMAC
	CipherEncrypt
	CipherDecrypt

	// Key derivation.
	PBKDF2
	Scrypt
	HKDF
	Argon2

	// Elliptic curves.
	PrivateToPublic
	ECDSASign
	ECDSAVerify
	ECDHDerive

	numKinds
)

// NumKinds is the size of the Kind enumeration.
const NumKinds = uint32(numKinds)

var kindNames = [numKinds]string{
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Sqr: "Sqr", Mod: "Mod",
	ExpMod: "ExpMod", GCD: "GCD", AddMod: "AddMod", SubMod: "SubMod",
	MulMod: "MulMod", SqrMod: "SqrMod", InvMod: "InvMod", LCM: "LCM",
	Cmp: "Cmp", Abs: "Abs", Neg: "Neg", IsEven: "IsEven", IsOdd: "IsOdd",
	Digest: "Digest", HMAC: "HMAC",
	CipherEncrypt: "CipherEncrypt", CipherDecrypt: "CipherDecrypt",
	PBKDF2: "PBKDF2", Scrypt: "Scrypt", HKDF: "HKDF", Argon2: "Argon2",
	PrivateToPublic: "PrivateToPublic", ECDSASign: "ECDSASign",
	ECDSAVerify: "ECDSAVerify", ECDHDerive: "ECDHDerive",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Valid reports whether k is part of the enumeration.
func (k Kind) Valid() bool { return k < numKinds }

// Kinds returns every kind in enumeration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// KindSet is a static capability set: the operation kinds a module claims to
// implement correctly.
type KindSet struct {
	bits [numKinds]bool
}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		if k.Valid() {
			s.bits[k] = true
		}
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool { return k.Valid() && s.bits[k] }

// List returns the members in enumeration order.
func (s KindSet) List() []Kind {
	var out []Kind
	for k := Kind(0); k < numKinds; k++ {
		if s.bits[k] {
			out = append(out, k)
		}
	}
	return out
}

// OperandType is the declared type of one operand slot.
type OperandType uint8

const (
	TBignum OperandType = iota
	TBytes
	TUint
)

func (t OperandType) String() string {
	switch t {
	case TBignum:
		return "bignum"
	case TBytes:
		return "bytes"
	case TUint:
		return "uint"
	default:
		return fmt.Sprintf("OperandType(%d)", uint8(t))
	}
}

// signatures declares the fixed ordered operand list of each kind.
var signatures = [numKinds][]OperandType{
	Add:    {TBignum, TBignum},
	Sub:    {TBignum, TBignum},
	Mul:    {TBignum, TBignum},
	Div:    {TBignum, TBignum},
	Sqr:    {TBignum},
	Mod:    {TBignum, TBignum},
	ExpMod: {TBignum, TBignum, TBignum},
	GCD:    {TBignum, TBignum},
	AddMod: {TBignum, TBignum, TBignum},
	SubMod: {TBignum, TBignum, TBignum},
	MulMod: {TBignum, TBignum, TBignum},
	SqrMod: {TBignum, TBignum},
	InvMod: {TBignum, TBignum},
	LCM:    {TBignum, TBignum},
	Cmp:    {TBignum, TBignum},
	Abs:    {TBignum},
	Neg:    {TBignum},
	IsEven: {TBignum},
	IsOdd:  {TBignum},

	Digest:        {TBytes},
	HMAC:          {TBytes, TBytes},                 // key, message
	CipherEncrypt: {TBytes, TBytes, TBytes, TBytes}, // key, nonce, aad, plaintext
	CipherDecrypt: {TBytes, TBytes, TBytes, TBytes}, // key, nonce, aad, ciphertext

	PBKDF2: {TBytes, TBytes, TUint, TUint},                // password, salt, iterations, keylen
	Scrypt: {TBytes, TBytes, TUint, TUint, TUint, TUint},  // password, salt, N, r, p, keylen
	HKDF:   {TBytes, TBytes, TBytes, TUint},               // ikm, salt, info, keylen
	Argon2: {TBytes, TBytes, TUint, TUint, TUint, TUint},  // password, salt, time, memKiB, threads, keylen

	PrivateToPublic: {TBignum},
	ECDSASign:       {TBignum, TBytes},                   // priv, message
	ECDSAVerify:     {TBytes, TBytes, TBignum, TBignum},  // pubkey, message, r, s
	ECDHDerive:      {TBignum, TBytes},                   // priv, peer pubkey
}

// Signature returns the declared operand types for k.
func (k Kind) Signature() []OperandType {
	if !k.Valid() {
		return nil
	}
	return signatures[k]
}

// Operation is one decoded cryptographic operation: a kind, an optional
// algorithm selector, the typed operands matching the kind's signature and
// the opaque trailing modifier handed to every module.
type Operation struct {
	Kind      Kind
	Algorithm Algorithm
	Operands  []types.Value
	Modifier  []byte
}

// New validates the operand list against the kind's declared signature.
// A mismatch is a programming error in the caller, not a fuzz finding, but
// it is reported as an error so engine code can fail loudly.
func New(kind Kind, alg Algorithm, operands []types.Value, modifier []byte) (*Operation, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("operation: invalid kind %d", uint32(kind))
	}
	sig := signatures[kind]
	if len(operands) != len(sig) {
		return nil, fmt.Errorf("operation: %v wants %d operands, got %d", kind, len(sig), len(operands))
	}
	for i, want := range sig {
		var ok bool
		switch want {
		case TBignum:
			_, ok = operands[i].(types.Bignum)
		case TBytes:
			_, ok = operands[i].(types.Bytes)
		case TUint:
			_, ok = operands[i].(types.Uint)
		}
		if !ok {
			return nil, fmt.Errorf("operation: %v operand %d must be %v, got %T", kind, i, want, operands[i])
		}
	}
	if fam := algorithmFamily(kind); fam == famNone {
		if alg != AlgNone {
			return nil, fmt.Errorf("operation: %v takes no algorithm, got %v", kind, alg)
		}
	} else if !alg.inFamily(fam) {
		return nil, fmt.Errorf("operation: %v cannot use algorithm %v", kind, alg)
	}
	return &Operation{Kind: kind, Algorithm: alg, Operands: operands, Modifier: modifier}, nil
}

// Bignum returns operand i as a Bignum. It panics on a type mismatch, which
// New and the decoder rule out by construction.
func (op *Operation) Bignum(i int) types.Bignum { return op.Operands[i].(types.Bignum) }

// Bytes returns operand i as a byte string.
func (op *Operation) Bytes(i int) types.Bytes { return op.Operands[i].(types.Bytes) }

// Uint returns operand i as an unsigned parameter.
func (op *Operation) Uint(i int) uint64 { return uint64(op.Operands[i].(types.Uint)) }

func (op *Operation) String() string {
	if op.Algorithm == AlgNone {
		return op.Kind.String()
	}
	return fmt.Sprintf("%v/%v", op.Kind, op.Algorithm)
}
