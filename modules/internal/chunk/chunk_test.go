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

package chunk

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/stretchr/testify/require"
)

func TestSplitDefaultIsOneShot(t *testing.T) {
	data := []byte("hello world")
	for _, mod := range [][]byte{nil, {0x00}} {
		chunks := Split(data, datasource.New(mod))
		require.Len(t, chunks, 1)
		require.Equal(t, data, chunks[0])
	}
}

func TestSplitPreservesContent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		data := make([]byte, rng.Intn(200))
		rng.Read(data)
		mod := make([]byte, rng.Intn(40))
		rng.Read(mod)

		chunks := Split(data, datasource.New(mod))
		require.NotEmpty(t, chunks)
		var joined []byte
		for _, c := range chunks {
			joined = append(joined, c...)
		}
		if !bytes.Equal(data, joined) {
			t.Fatalf("chunks do not reassemble input: %x != %x", joined, data)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	data := []byte("0123456789abcdef0123456789abcdef")
	mod := []byte{0x01, 0, 0, 0, 2, 0, 0, 0, 5, 0, 0, 0, 1}
	a := Split(data, datasource.New(mod))
	b := Split(data, datasource.New(mod))
	require.Equal(t, a, b)
	require.Greater(t, len(a), 1, "modifier should force chunking")
}
