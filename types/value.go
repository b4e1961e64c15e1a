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

// Package types defines the operand and result values flowing between the
// engine and the library modules.
//
// Cross-module equality is established on canonical serializations only:
// two values denote the same cryptographic result iff their Canonical()
// strings are equal, independent of how the producing library represents
// them internally.
package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Value is a typed operand or module result with a canonical serialization.
type Value interface {
	// Canonical returns the normalized textual form used for cross-module
	// comparison.
	Canonical() string
	fmt.Stringer
}

// Bignum is an arbitrary-precision signed integer. Its canonical form is
// base-10 text, which normalizes sign-magnitude vs two's-complement
// representations, leading zero bytes and negative zero in one go.
type Bignum struct {
	i *big.Int
}

// NewBignum copies v into a Bignum. A nil v is treated as zero.
func NewBignum(v *big.Int) Bignum {
	if v == nil {
		return Bignum{i: new(big.Int)}
	}
	return Bignum{i: new(big.Int).Set(v)}
}

// NewBignumFromInt64 is a convenience constructor for small constants.
func NewBignumFromInt64(v int64) Bignum {
	return Bignum{i: big.NewInt(v)}
}

// BignumFromBytes builds a Bignum from a sign flag and a big-endian
// magnitude. A zero magnitude is canonicalized to +0 regardless of the flag.
func BignumFromBytes(neg bool, mag []byte) Bignum {
	i := new(big.Int).SetBytes(mag)
	if neg && i.Sign() != 0 {
		i.Neg(i)
	}
	return Bignum{i: i}
}

// Int returns a fresh copy of the integer. Handlers receive copies so they
// cannot mutate the operands seen by other modules.
func (b Bignum) Int() *big.Int {
	if b.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.i)
}

// Sign reports the sign of the integer (-1, 0 or 1).
func (b Bignum) Sign() int {
	if b.i == nil {
		return 0
	}
	return b.i.Sign()
}

func (b Bignum) Canonical() string {
	if b.i == nil {
		return "0"
	}
	return b.i.Text(10)
}

func (b Bignum) String() string { return b.Canonical() }

// Bytes is a raw byte string operand or result. Canonical form is lowercase
// hex; the empty string stands for the empty byte string.
type Bytes []byte

func (b Bytes) Canonical() string { return hex.EncodeToString(b) }

func (b Bytes) String() string { return "0x" + b.Canonical() }

// Bool is a truth-valued result, canonicalized to "1"/"0" so that libraries
// reporting e.g. arbitrary nonzero ints for "true" compare equal.
type Bool bool

func (b Bool) Canonical() string {
	if b {
		return "1"
	}
	return "0"
}

func (b Bool) String() string { return b.Canonical() }

// Uint is a small unsigned parameter operand (iteration counts, key lengths).
type Uint uint64

func (u Uint) Canonical() string { return fmt.Sprintf("%d", uint64(u)) }

func (u Uint) String() string { return u.Canonical() }
