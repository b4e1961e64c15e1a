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

package core

import (
	"math/big"
	"testing"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
	"github.com/stretchr/testify/require"
)

// fakeModule answers every Add with a scripted value, or declines.
type fakeModule struct {
	name string
	// run supersedes value when set; it sees the strategy datasource.
	run   func(op *operation.Operation, mod *datasource.Datasource) (types.Value, error)
	value types.Value
}

func (f *fakeModule) Name() string { return f.name }

func (f *fakeModule) Capabilities() operation.KindSet {
	return operation.NewKindSet(operation.Add, operation.Cmp)
}

func (f *fakeModule) Run(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
	if f.run != nil {
		return f.run(op, mod)
	}
	if f.value == nil {
		return nil, modules.ErrUnsupported
	}
	return f.value, nil
}

func addOp(t *testing.T, a, b int64, modifier []byte) *operation.Operation {
	t.Helper()
	op, err := operation.New(operation.Add, operation.AlgNone,
		[]types.Value{types.NewBignum(big.NewInt(a)), types.NewBignum(big.NewInt(b))}, modifier)
	require.NoError(t, err)
	return op
}

func bn(v int64) types.Value { return types.NewBignum(big.NewInt(v)) }

func registry(t *testing.T, mods ...modules.Module) *modules.Registry {
	t.Helper()
	reg, err := modules.NewRegistry(mods...)
	require.NoError(t, err)
	return reg
}

func TestComparePassesWithOneConcreteResult(t *testing.T) {
	op := addOp(t, 40, 2, nil)
	div := Compare(op, []Result{
		{Module: "a"}, // declined
		{Module: "b", Value: bn(42)},
	})
	require.Nil(t, div)
}

func TestCompareDetectsDivergence(t *testing.T) {
	op := addOp(t, 5, 5, nil)
	div := Compare(op, []Result{
		{Module: "a", Value: bn(10)},
		{Module: "b", Value: bn(11)},
	})
	require.NotNil(t, div)
	require.Empty(t, div.Self)
	require.Contains(t, div.Error(), "a")
	require.Contains(t, div.Error(), "b")
	require.Contains(t, div.Error(), "10")
	require.Contains(t, div.Error(), "11")
}

func TestCompareNormalizesCmpCodes(t *testing.T) {
	op, err := operation.New(operation.Cmp, operation.AlgNone,
		[]types.Value{bn(3), bn(9)}, nil)
	require.NoError(t, err)
	// Any negative code means "less than"; -7 and -1 must compare equal.
	div := Compare(op, []Result{
		{Module: "a", Value: bn(-7)},
		{Module: "b", Value: bn(-1)},
	})
	require.Nil(t, div)

	div = Compare(op, []Result{
		{Module: "a", Value: bn(-7)},
		{Module: "b", Value: bn(1)},
	})
	require.NotNil(t, div)
}

func TestExecuteDispatchesToCapableModules(t *testing.T) {
	reg := registry(t,
		&fakeModule{name: "a", value: bn(42)},
		&fakeModule{name: "b"}, // declines
		&fakeModule{name: "c", value: bn(42)},
	)
	results, div := Execute(reg, addOp(t, 40, 2, nil), datasource.New(nil))
	require.Nil(t, div)
	require.Len(t, results, 3)
	require.False(t, results[0].Declined())
	require.True(t, results[1].Declined())
	require.Equal(t, "42", results[2].Value.Canonical())
}

func TestExecuteMapsPanicToDecline(t *testing.T) {
	reg := registry(t,
		&fakeModule{name: "boom", run: func(*operation.Operation, *datasource.Datasource) (types.Value, error) {
			panic("library bug")
		}},
		&fakeModule{name: "ok", value: bn(42)},
	)
	results, div := Execute(reg, addOp(t, 40, 2, nil), datasource.New(nil))
	require.Nil(t, div)
	require.True(t, results[0].Declined())
	require.False(t, results[1].Declined())
}

func TestExecuteSelfDivergence(t *testing.T) {
	// The module's answer depends on the strategy byte: a self-divergence.
	flaky := &fakeModule{name: "flaky", run: func(op *operation.Operation, mod *datasource.Datasource) (types.Value, error) {
		if alt, _ := mod.GetBool(); alt {
			return bn(43), nil
		}
		return bn(42), nil
	}}
	reg := registry(t, flaky)

	op := addOp(t, 40, 2, []byte{0x00})
	// Iteration stream supplies a second modifier with the low bit set:
	// 4-byte length prefix, then the modifier byte.
	ds := datasource.New([]byte{0, 0, 0, 1, 0x01})
	_, div := Execute(reg, op, ds)
	require.NotNil(t, div)
	require.Equal(t, "flaky", div.Self)

	// With no continuation bytes there is no recheck and no finding.
	_, div = Execute(reg, op, datasource.New(nil))
	require.Nil(t, div)
}

func TestDriverUnderflowIsNotAnError(t *testing.T) {
	d := NewDriver(registry(t, &fakeModule{name: "a", value: bn(1)}))
	div, executed := d.Run(nil)
	require.Nil(t, div)
	require.Zero(t, executed)
	require.Zero(t, d.Fuzz([]byte{0x01}))
}

// rawAdd55 decodes to Add(5, 5) with an empty modifier: kind selector,
// then per operand a sign byte and a length-prefixed magnitude, then the
// modifier length.
var rawAdd55 = []byte{
	0, 0, 0, 0, // kind: Add
	0x00, 0, 0, 0, 1, 5, // +5
	0x00, 0, 0, 0, 1, 5, // +5
	0, 0, 0, 0, // empty modifier
}

func TestFuzzPanicsOnDivergence(t *testing.T) {
	agree := NewDriver(registry(t,
		&fakeModule{name: "a", value: bn(10)},
		&fakeModule{name: "b", value: bn(10)},
	))
	require.Equal(t, 1, agree.Fuzz(rawAdd55))

	disagree := NewDriver(registry(t,
		&fakeModule{name: "a", value: bn(10)},
		&fakeModule{name: "b", value: bn(11)},
	))
	require.Panics(t, func() { disagree.Fuzz(rawAdd55) })
}

func TestReportRoundTrip(t *testing.T) {
	op := addOp(t, 5, 5, []byte{0xaa})
	div := &Divergence{
		Op: op,
		Results: []Result{
			{Module: "a", Value: bn(10)},
			{Module: "b", Value: bn(11)},
			{Module: "c"},
		},
	}
	rep := div.Report()
	require.Equal(t, "Add", rep.Kind)
	require.Equal(t, []string{"5", "5"}, rep.Operands)
	require.True(t, rep.Results[2].Declined)

	enc, err := rep.Encode()
	require.NoError(t, err)
	back, err := DecodeReport(enc)
	require.NoError(t, err)
	require.Equal(t, rep, back)

	// Canonical encoding is deterministic.
	enc2, err := rep.Encode()
	require.NoError(t, err)
	require.Equal(t, enc, enc2)
}
