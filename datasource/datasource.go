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

// Package datasource turns a raw fuzzer input into a stream of typed values.
//
// A Datasource wraps one byte buffer and a cursor. Every decode consumes a
// prefix of the remaining buffer, so identical buffers always yield identical
// value sequences and a recorded crashing input replays exactly. Running out
// of bytes is reported through ErrExhausted and is a normal, recoverable
// condition, never a reason to panic.
package datasource

import (
	"encoding/binary"
	"errors"
)

// ErrExhausted is returned when the buffer holds fewer bytes than a decode
// request needs. The cursor is left unchanged in that case.
var ErrExhausted = errors.New("datasource: input exhausted")

// Datasource is a deterministic, order-preserving consumer of a finite byte
// buffer. It is created once per fuzz iteration and never rewinds.
type Datasource struct {
	buf []byte
	pos int
}

// New wraps the given buffer. The buffer is not copied; callers must not
// mutate it for the lifetime of the Datasource.
func New(buf []byte) *Datasource {
	return &Datasource{buf: buf}
}

// Remaining reports how many undecoded bytes are left.
func (ds *Datasource) Remaining() int {
	return len(ds.buf) - ds.pos
}

// take consumes exactly n bytes, or fails without moving the cursor.
func (ds *Datasource) take(n int) ([]byte, error) {
	if n < 0 || ds.Remaining() < n {
		return nil, ErrExhausted
	}
	b := ds.buf[ds.pos : ds.pos+n]
	ds.pos += n
	return b, nil
}

// GetByte consumes a single byte.
func (ds *Datasource) GetByte() (byte, error) {
	b, err := ds.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetUint32 consumes four bytes, big endian.
func (ds *Datasource) GetUint32() (uint32, error) {
	b, err := ds.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// GetUint64 consumes eight bytes, big endian.
func (ds *Datasource) GetUint64() (uint64, error) {
	b, err := ds.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// GetBytes consumes a length-prefixed byte string. The length is a uint32
// wrapped into [0, maxLen], so every prefix value is valid and minimized
// corpora decode the same way as the originals. The returned slice is a copy.
func (ds *Datasource) GetBytes(maxLen int) ([]byte, error) {
	if maxLen < 0 {
		return nil, ErrExhausted
	}
	n, err := ds.GetUint32()
	if err != nil {
		return nil, err
	}
	want := int(n % uint32(maxLen+1))
	b, err := ds.take(want)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// GetFixed consumes exactly n bytes with no length prefix. The returned
// slice is a copy.
func (ds *Datasource) GetFixed(n int) ([]byte, error) {
	b, err := ds.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// GetChoice consumes a uint32 and wraps it into [0, n). n must be positive.
func (ds *Datasource) GetChoice(n uint32) (uint32, error) {
	if n == 0 {
		return 0, ErrExhausted
	}
	v, err := ds.GetUint32()
	if err != nil {
		return 0, err
	}
	return v % n, nil
}

// GetBool consumes one byte and reports whether its low bit is set.
func (ds *Datasource) GetBool() (bool, error) {
	b, err := ds.GetByte()
	if err != nil {
		return false, err
	}
	return b&1 == 1, nil
}
