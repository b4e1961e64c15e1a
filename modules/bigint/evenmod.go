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

package bigint

import (
	"math/big"
	"math/bits"
)

// evenExpMod computes x**y mod m for even m > 0 by splitting m into an odd
// part and a power of two, exponentiating against each and recombining with
// a single-inverse CRT step. It is the module's alternate ExpMod strategy:
// semantically interchangeable with big.Int.Exp, so the self-differential
// recheck can hold the two paths against each other.
//
// Requires x >= 0, y > 0 and even m > 0; expMod guards those.
func evenExpMod(x, y, m *big.Int) *big.Int {
	one := big.NewInt(1)

	// m = m2 << n with m2 odd.
	n := m.TrailingZeroBits()
	m1 := new(big.Int).Lsh(one, n)
	mask := new(big.Int).Sub(m1, one)
	m2 := new(big.Int).Rsh(m, n)

	// The residues of z = x**y mod m modulo the two coprime factors.
	z1 := expModPow2(x, y, mask)
	z2 := new(big.Int).Exp(x, y, m2)

	// CRT: z = z2 + m2 * ((z1 - z2) * m2^-1 mod m1). Reductions mod m1 are
	// masks since m1 is a power of two.
	d := new(big.Int).And(z1, mask)
	r := new(big.Int).And(z2, mask)
	d.Sub(d, r)
	if d.Sign() < 0 {
		d.Add(d, m1)
	}
	p := new(big.Int).ModInverse(m2, m1)
	p.Mul(p, d)
	p.And(p, mask)

	z := new(big.Int).Mul(p, m2)
	z.Add(z, z2)
	return z.Rem(z, m)
}

// expModPow2 computes x**y mod 2**n, with the modulus passed as its bit mask.
// Squaring under a power of two is just a mask, so this runs bit-by-bit over
// the exponent without big.Int.Exp's general reduction machinery.
func expModPow2(x, y, mask *big.Int) *big.Int {
	z := big.NewInt(1)
	if y.Sign() == 0 {
		return z
	}
	p := new(big.Int).And(x, mask)
	if p.Cmp(z) <= 0 {
		// 0 or 1 is its own power.
		return p
	}
	// The multiplicative order of any unit mod 2**n divides 2**(n-1), so
	// exponent bits above the mask width cannot change the result.
	if y.Cmp(mask) > 0 {
		y = new(big.Int).And(y, mask)
	}
	t := new(big.Int)
	for _, w := range y.Bits() {
		for i := 0; i < bits.UintSize; i++ {
			if w&1 != 0 {
				z, t = t.Mul(z, p), z
				z.And(z, mask)
			}
			p, t = t.Mul(p, p), p
			p.And(p, mask)
			w >>= 1
		}
	}
	return z
}
