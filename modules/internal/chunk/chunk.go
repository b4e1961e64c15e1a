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

// Package chunk derives an input partition from modifier bytes, letting
// streaming primitives (hashes, stream ciphers) be driven through either a
// one-shot or an incrementally chunked code path with identical results.
package chunk

import "github.com/cryptodiff/go-cryptodiff/datasource"

// Split partitions data according to the modifier datasource. The default
// (first modifier bit unset, or modifier exhausted) is a single chunk;
// otherwise chunk sizes are drawn from the modifier until it runs out, at
// which point the remainder becomes the final chunk. The concatenation of
// the returned chunks is always exactly data; chunks may be empty.
func Split(data []byte, mod *datasource.Datasource) [][]byte {
	chunked, err := mod.GetBool()
	if err != nil || !chunked {
		return [][]byte{data}
	}
	var out [][]byte
	for len(data) > 0 {
		n, err := mod.GetChoice(uint32(len(data)))
		if err != nil {
			break
		}
		out = append(out, data[:n+1])
		data = data[n+1:]
	}
	if len(data) > 0 || len(out) == 0 {
		out = append(out, data)
	}
	return out
}
