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

package uint256

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
	"github.com/stretchr/testify/require"

	"github.com/cryptodiff/go-cryptodiff/modules/bigint"
)

func runOp(t *testing.T, m modules.Module, kind operation.Kind, args ...*big.Int) (string, error) {
	t.Helper()
	operands := make([]types.Value, len(args))
	for i, a := range args {
		operands[i] = types.NewBignum(a)
	}
	op, err := operation.New(kind, operation.AlgNone, operands, nil)
	require.NoError(t, err)
	res, err := m.Run(op, datasource.New(nil))
	if err != nil {
		return "", err
	}
	return res.Canonical(), nil
}

func TestDeclinesOutOfDomain(t *testing.T) {
	m := New()
	neg := big.NewInt(-1)
	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	two := big.NewInt(2)

	_, err := runOp(t, m, operation.Add, neg, two)
	require.ErrorIs(t, err, modules.ErrUnsupported)
	_, err = runOp(t, m, operation.Add, huge, two)
	require.ErrorIs(t, err, modules.ErrUnsupported)

	// Result overflow / underflow.
	maxU := new(big.Int).Sub(huge, big.NewInt(1))
	_, err = runOp(t, m, operation.Add, maxU, two)
	require.ErrorIs(t, err, modules.ErrUnsupported)
	_, err = runOp(t, m, operation.Sub, two, maxU)
	require.ErrorIs(t, err, modules.ErrUnsupported)
	_, err = runOp(t, m, operation.Mul, maxU, two)
	require.ErrorIs(t, err, modules.ErrUnsupported)
}

// TestAgreesWithReference cross-checks the module against the math/big
// reference inside its claimed domain, which is exactly the comparison the
// engine performs at runtime.
func TestAgreesWithReference(t *testing.T) {
	m, ref := New(), bigint.New()
	rng := rand.New(rand.NewSource(99))
	bound := new(big.Int).Lsh(big.NewInt(1), 120)

	kinds := []struct {
		kind  operation.Kind
		arity int
	}{
		{operation.Add, 2}, {operation.Sub, 2}, {operation.Mul, 2},
		{operation.Sqr, 1}, {operation.Div, 2}, {operation.Mod, 2},
		{operation.AddMod, 3}, {operation.MulMod, 3}, {operation.SqrMod, 2},
		{operation.Cmp, 2}, {operation.Abs, 1},
		{operation.IsEven, 1}, {operation.IsOdd, 1},
	}
	for i := 0; i < 300; i++ {
		k := kinds[rng.Intn(len(kinds))]
		args := make([]*big.Int, k.arity)
		for j := range args {
			args[j] = new(big.Int).Rand(rng, bound)
		}
		got, errGot := runOp(t, m, k.kind, args...)
		want, errWant := runOp(t, ref, k.kind, args...)
		if errGot != nil || errWant != nil {
			// One side declining removes it from the comparison set; only
			// concrete disagreement matters.
			continue
		}
		require.Equal(t, want, got, "%v(%v)", k.kind, args)
	}
}

func TestZeroDivisorSemantics(t *testing.T) {
	m := New()
	got, err := runOp(t, m, operation.Div, big.NewInt(5), big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, "0", got)
	got, err = runOp(t, m, operation.Mod, big.NewInt(5), big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, "0", got)
	_, err = runOp(t, m, operation.AddMod, big.NewInt(1), big.NewInt(2), big.NewInt(0))
	require.ErrorIs(t, err, modules.ErrUnsupported)
}
