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

// Package bigint is the math/big reference module. It implements the full
// bignum operation set and serves as the comparison baseline for the
// narrower arithmetic modules.
//
// Decline policy (fixed at build time):
//   - Div, Mod, *Mod kinds: zero (or negative, where a modulus) divisor.
//   - ExpMod: negative base, negative exponent, modulus <= 0.
//   - InvMod: modulus <= 0 or non-invertible pair.
//
// Everything else, including zero bases and negative operands elsewhere, is
// computed.
package bigint

import (
	"math/big"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// Module computes bignum arithmetic with math/big.
type Module struct{}

// New returns the math/big module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "bigint" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.Add, operation.Sub, operation.Mul, operation.Div,
		operation.Sqr, operation.Mod, operation.ExpMod, operation.GCD,
		operation.AddMod, operation.SubMod, operation.MulMod,
		operation.SqrMod, operation.InvMod, operation.LCM, operation.Cmp,
		operation.Abs, operation.Neg, operation.IsEven, operation.IsOdd,
	)
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	// alt picks between internally equivalent strategies where the kind has
	// two. Exhausted modifier means the default path.
	alt, _ := mod.GetBool()

	switch op.Kind {
	case operation.Add:
		return m.add(op.Bignum(0).Int(), op.Bignum(1).Int(), alt), nil
	case operation.Sub:
		return m.sub(op.Bignum(0).Int(), op.Bignum(1).Int(), alt), nil
	case operation.Mul:
		return bn(new(big.Int).Mul(op.Bignum(0).Int(), op.Bignum(1).Int())), nil
	case operation.Sqr:
		a := op.Bignum(0).Int()
		return bn(new(big.Int).Mul(a, a)), nil
	case operation.Div:
		a, b := op.Bignum(0).Int(), op.Bignum(1).Int()
		if b.Sign() == 0 {
			return nil, modules.ErrUnsupported
		}
		return bn(new(big.Int).Quo(a, b)), nil
	case operation.Mod:
		a, b := op.Bignum(0).Int(), op.Bignum(1).Int()
		if b.Sign() == 0 {
			return nil, modules.ErrUnsupported
		}
		return bn(new(big.Int).Mod(a, b)), nil
	case operation.ExpMod:
		return m.expMod(op.Bignum(0).Int(), op.Bignum(1).Int(), op.Bignum(2).Int(), alt)
	case operation.GCD:
		return bn(new(big.Int).GCD(nil, nil, abs(op.Bignum(0).Int()), abs(op.Bignum(1).Int()))), nil
	case operation.LCM:
		return m.lcm(op.Bignum(0).Int(), op.Bignum(1).Int()), nil
	case operation.AddMod:
		return m.binMod(op, alt, new(big.Int).Add)
	case operation.SubMod:
		return m.binMod(op, alt, new(big.Int).Sub)
	case operation.MulMod:
		return m.binMod(op, alt, new(big.Int).Mul)
	case operation.SqrMod:
		a, mm := op.Bignum(0).Int(), op.Bignum(1).Int()
		if mm.Sign() <= 0 {
			return nil, modules.ErrUnsupported
		}
		sq := new(big.Int).Mul(a, a)
		return bn(sq.Mod(sq, mm)), nil
	case operation.InvMod:
		a, mm := op.Bignum(0).Int(), op.Bignum(1).Int()
		if mm.Sign() <= 0 {
			return nil, modules.ErrUnsupported
		}
		inv := new(big.Int).ModInverse(a, mm)
		if inv == nil {
			return nil, modules.ErrUnsupported
		}
		return bn(inv), nil
	case operation.Cmp:
		return bn(big.NewInt(int64(op.Bignum(0).Int().Cmp(op.Bignum(1).Int())))), nil
	case operation.Abs:
		return bn(abs(op.Bignum(0).Int())), nil
	case operation.Neg:
		return bn(new(big.Int).Neg(op.Bignum(0).Int())), nil
	case operation.IsEven:
		return types.Bool(op.Bignum(0).Int().Bit(0) == 0), nil
	case operation.IsOdd:
		return types.Bool(op.Bignum(0).Int().Bit(0) == 1), nil
	default:
		return nil, modules.ErrUnsupported
	}
}

// add computes a+b either directly or as a-(-b).
func (m *Module) add(a, b *big.Int, alt bool) types.Value {
	if alt {
		return bn(new(big.Int).Sub(a, new(big.Int).Neg(b)))
	}
	return bn(new(big.Int).Add(a, b))
}

// sub computes a-b either directly or as a+(-b).
func (m *Module) sub(a, b *big.Int, alt bool) types.Value {
	if alt {
		return bn(new(big.Int).Add(a, new(big.Int).Neg(b)))
	}
	return bn(new(big.Int).Sub(a, b))
}

// expMod computes base^exp mod m. The alternate strategy is the CRT split
// for even moduli; both paths must agree, which is exactly the kind of
// internal consistency the self-differential check exercises.
func (m *Module) expMod(base, exp, mm *big.Int, alt bool) (types.Value, error) {
	if base.Sign() < 0 || exp.Sign() < 0 || mm.Sign() <= 0 {
		return nil, modules.ErrUnsupported
	}
	if alt && mm.Bit(0) == 0 && mm.BitLen() > 1 && exp.Sign() > 0 {
		return bn(evenExpMod(base, exp, mm)), nil
	}
	return bn(new(big.Int).Exp(base, exp, mm)), nil
}

// binMod computes f(a,b) mod m, optionally reducing the inputs first.
func (m *Module) binMod(op *operation.Operation, alt bool, f func(x, y *big.Int) *big.Int) (types.Value, error) {
	a, b, mm := op.Bignum(0).Int(), op.Bignum(1).Int(), op.Bignum(2).Int()
	if mm.Sign() <= 0 {
		return nil, modules.ErrUnsupported
	}
	if alt {
		a.Mod(a, mm)
		b.Mod(b, mm)
	}
	r := f(a, b)
	return bn(r.Mod(r, mm)), nil
}

func (m *Module) lcm(a, b *big.Int) types.Value {
	a, b = abs(a), abs(b)
	if a.Sign() == 0 || b.Sign() == 0 {
		return bn(new(big.Int))
	}
	gcd := new(big.Int).GCD(nil, nil, a, b)
	r := new(big.Int).Mul(a, b)
	return bn(r.Quo(r, gcd))
}

func abs(a *big.Int) *big.Int { return new(big.Int).Abs(a) }

func bn(v *big.Int) types.Bignum { return types.NewBignum(v) }
