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

package datasource

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUint64(t *testing.T) {
	ds := New([]byte{0, 0, 0, 0, 0, 0, 1, 2})
	v, err := ds.GetUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102), v)
	require.Equal(t, 0, ds.Remaining())

	_, err = ds.GetUint64()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestExhaustionLeavesCursor(t *testing.T) {
	ds := New([]byte{1, 2, 3})
	_, err := ds.GetUint32()
	require.ErrorIs(t, err, ErrExhausted)

	// A failed wide read must not consume the narrower reads that still fit.
	for i := 0; i < 3; i++ {
		b, err := ds.GetByte()
		require.NoError(t, err)
		require.Equal(t, byte(i+1), b)
	}
	_, err = ds.GetByte()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestGetBytes(t *testing.T) {
	// Length prefix 5, wrapped into [0,3] -> 5 % 4 = 1 byte payload.
	ds := New([]byte{0, 0, 0, 5, 0xaa, 0xbb})
	b, err := ds.GetBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa}, b)
	require.Equal(t, 1, ds.Remaining())
}

func TestGetBytesCopies(t *testing.T) {
	buf := []byte{0, 0, 0, 1, 0x7f}
	ds := New(buf)
	b, err := ds.GetBytes(16)
	require.NoError(t, err)
	b[0] = 0
	require.Equal(t, byte(0x7f), buf[4])
}

func TestGetBytesUnderflow(t *testing.T) {
	// Prefix asks for 8 bytes but only 2 remain.
	ds := New([]byte{0, 0, 0, 8, 1, 2})
	_, err := ds.GetBytes(255)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestGetChoice(t *testing.T) {
	ds := New([]byte{0, 0, 0, 9})
	c, err := ds.GetChoice(4)
	require.NoError(t, err)
	require.Equal(t, uint32(1), c)
}

func TestDeterminism(t *testing.T) {
	input := []byte{9, 0, 0, 0, 7, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	decode := func() [][]byte {
		ds := New(input)
		var got [][]byte
		for {
			b, err := ds.GetBytes(5)
			if err != nil {
				return got
			}
			got = append(got, b)
		}
	}
	a, b := decode(), decode()
	require.Equal(t, len(a), len(b))
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			t.Fatalf("decode %d differs: %x != %x", i, a[i], b[i])
		}
	}
}
