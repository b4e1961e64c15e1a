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

// Package uint256 adapts github.com/holiman/uint256 as a bignum module.
//
// The library models fixed 256-bit unsigned words, so the module only claims
// the slice of the bignum space where that agrees with arbitrary-precision
// arithmetic: it declines negative operands, operands over 256 bits and any
// computation whose true result would not fit. Inside that slice its results
// must match the reference module bit for bit, which is the point.
package uint256

import (
	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
	u256 "github.com/holiman/uint256"
)

// Module computes bignum arithmetic with holiman/uint256.
type Module struct{}

// New returns the uint256 module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return "uint256" }

func (m *Module) Capabilities() operation.KindSet {
	return operation.NewKindSet(
		operation.Add, operation.Sub, operation.Mul, operation.Sqr,
		operation.Div, operation.Mod, operation.AddMod, operation.MulMod,
		operation.SqrMod, operation.Cmp, operation.Abs,
		operation.IsEven, operation.IsOdd,
	)
}

// operand converts a signed arbitrary-precision operand, declining anything
// the library cannot represent.
func operand(b types.Bignum) (*u256.Int, error) {
	if b.Sign() < 0 {
		return nil, modules.ErrUnsupported
	}
	v, overflow := u256.FromBig(b.Int())
	if overflow {
		return nil, modules.ErrUnsupported
	}
	return v, nil
}

func (m *Module) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	args := make([]*u256.Int, len(op.Operands))
	for i := range op.Operands {
		v, err := operand(op.Bignum(i))
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	z := new(u256.Int)
	switch op.Kind {
	case operation.Add:
		if _, overflow := z.AddOverflow(args[0], args[1]); overflow {
			return nil, modules.ErrUnsupported
		}
	case operation.Sub:
		if _, underflow := z.SubOverflow(args[0], args[1]); underflow {
			// The true result is negative, out of the module's domain.
			return nil, modules.ErrUnsupported
		}
	case operation.Mul:
		if _, overflow := z.MulOverflow(args[0], args[1]); overflow {
			return nil, modules.ErrUnsupported
		}
	case operation.Sqr:
		if _, overflow := z.MulOverflow(args[0], args[0]); overflow {
			return nil, modules.ErrUnsupported
		}
	case operation.Div:
		if args[1].IsZero() {
			// Div(x, 0) is a documented zero in this library; the reference
			// module declines instead, so compute it and let the comparator
			// drop the singleton.
			return types.NewBignum(z.ToBig()), nil
		}
		z.Div(args[0], args[1])
	case operation.Mod:
		if args[1].IsZero() {
			return types.NewBignum(z.ToBig()), nil
		}
		z.Mod(args[0], args[1])
	case operation.AddMod:
		if args[2].IsZero() {
			return nil, modules.ErrUnsupported
		}
		z.AddMod(args[0], args[1], args[2])
	case operation.MulMod:
		if args[2].IsZero() {
			return nil, modules.ErrUnsupported
		}
		z.MulMod(args[0], args[1], args[2])
	case operation.SqrMod:
		if args[1].IsZero() {
			return nil, modules.ErrUnsupported
		}
		z.MulMod(args[0], args[0], args[1])
	case operation.Cmp:
		return types.NewBignumFromInt64(int64(args[0].Cmp(args[1]))), nil
	case operation.Abs:
		// Operands are non-negative by construction here.
		z.Set(args[0])
	case operation.IsEven:
		return types.Bool(args[0][0]&1 == 0), nil
	case operation.IsOdd:
		return types.Bool(args[0][0]&1 == 1), nil
	default:
		return nil, modules.ErrUnsupported
	}
	return types.NewBignum(z.ToBig()), nil
}
