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

package operation

import (
	"fmt"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// Decoding size caps. Oversized operands only slow the fuzzer down without
// buying coverage; 236KB integers have been reported as slow units upstream.
const (
	maxBignumBytes  = 64
	maxMessageLen   = 512
	maxKeyLen       = 64
	maxAADLen       = 64
	maxModifierLen  = 64
	maxPointLen     = 65 // uncompressed SEC1
	maxDigestMsgLen = 128
)

// Decode consumes the datasource to produce one well-formed operation.
//
// Selector policy: kind and algorithm selectors are wrapped into their valid
// range with GetChoice rather than rejected, so every selector value decodes
// to a valid operation and corpus minimization stays deterministic. Only
// running out of bytes aborts decoding (ErrExhausted); the iteration then
// performs no work.
//
// Degenerate operands (division by zero, zero modulus, out-of-range scalars)
// are decoded as-is: whether to decline them is each module's decision, and
// divergent error handling between libraries is exactly what the engine is
// after.
func Decode(ds *datasource.Datasource) (*Operation, error) {
	sel, err := ds.GetChoice(NumKinds)
	if err != nil {
		return nil, err
	}
	kind := Kind(sel)

	alg := AlgNone
	if fam := algorithmFamily(kind); fam != famNone {
		members := familyMembers(fam)
		c, err := ds.GetChoice(uint32(len(members)))
		if err != nil {
			return nil, err
		}
		alg = members[c]
	}

	operands, err := decodeOperands(ds, kind, alg)
	if err != nil {
		return nil, err
	}

	modifier, err := ds.GetBytes(maxModifierLen)
	if err != nil {
		return nil, err
	}

	op, err := New(kind, alg, operands, modifier)
	if err != nil {
		// The decoder only produces signature-conforming operand lists;
		// reaching this is a bug in the decoder itself.
		return nil, fmt.Errorf("operation: decoder produced malformed %v: %w", kind, err)
	}
	return op, nil
}

func decodeOperands(ds *datasource.Datasource, kind Kind, alg Algorithm) ([]types.Value, error) {
	switch kind {
	case Digest:
		return decodeSeq(ds, byteStr(maxMessageLen))
	case HMAC:
		return decodeSeq(ds, byteStr(maxKeyLen), byteStr(maxMessageLen))
	case CipherEncrypt, CipherDecrypt:
		return decodeSeq(ds,
			fixedStr(alg.KeySize()), fixedStr(alg.NonceSize()),
			byteStr(maxAADLen), byteStr(maxMessageLen))
	case PBKDF2:
		return decodeSeq(ds,
			byteStr(maxKeyLen), byteStr(maxKeyLen),
			uintIn(1, 4096), uintIn(1, 128))
	case Scrypt:
		return decodeSeq(ds,
			byteStr(maxKeyLen), byteStr(maxKeyLen),
			pow2In(1, 10), uintIn(1, 8), uintIn(1, 4), uintIn(1, 64))
	case HKDF:
		return decodeSeq(ds,
			byteStr(maxKeyLen), byteStr(maxKeyLen), byteStr(maxKeyLen),
			uintIn(1, 128))
	case Argon2:
		return decodeSeq(ds,
			byteStr(maxKeyLen), byteStr(maxKeyLen),
			uintIn(1, 3), uintMulIn(8, 1, 128), uintIn(1, 4), uintIn(16, 64))
	case PrivateToPublic:
		return decodeSeq(ds, bignum())
	case ECDSASign:
		return decodeSeq(ds, bignum(), byteStr(maxDigestMsgLen))
	case ECDSAVerify:
		return decodeSeq(ds, byteStr(maxPointLen), byteStr(maxDigestMsgLen), bignum(), bignum())
	case ECDHDerive:
		return decodeSeq(ds, bignum(), byteStr(maxPointLen))
	default:
		// All bignum arithmetic kinds: decode per declared signature.
		decoders := make([]operandDecoder, len(kind.Signature()))
		for i := range decoders {
			decoders[i] = bignum()
		}
		return decodeSeq(ds, decoders...)
	}
}

type operandDecoder func(*datasource.Datasource) (types.Value, error)

func decodeSeq(ds *datasource.Datasource, decoders ...operandDecoder) ([]types.Value, error) {
	out := make([]types.Value, 0, len(decoders))
	for _, dec := range decoders {
		v, err := dec(ds)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// bignum decodes a sign flag plus a big-endian magnitude. Zero magnitudes
// canonicalize to +0 no matter the flag.
func bignum() operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		neg, err := ds.GetBool()
		if err != nil {
			return nil, err
		}
		mag, err := ds.GetBytes(maxBignumBytes)
		if err != nil {
			return nil, err
		}
		return types.BignumFromBytes(neg, mag), nil
	}
}

func byteStr(maxLen int) operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		b, err := ds.GetBytes(maxLen)
		if err != nil {
			return nil, err
		}
		return types.Bytes(b), nil
	}
}

func fixedStr(n int) operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		b, err := ds.GetFixed(n)
		if err != nil {
			return nil, err
		}
		return types.Bytes(b), nil
	}
}

// uintIn decodes a parameter into [min, min+spread-1].
func uintIn(min, spread uint32) operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		c, err := ds.GetChoice(spread)
		if err != nil {
			return nil, err
		}
		return types.Uint(min + c), nil
	}
}

// uintMulIn decodes step*(min+c) for c in [0, spread).
func uintMulIn(step, min, spread uint32) operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		c, err := ds.GetChoice(spread)
		if err != nil {
			return nil, err
		}
		return types.Uint(step * (min + c)), nil
	}
}

// pow2In decodes 1<<(min+c) for c in [0, spread), for parameters that must
// be powers of two (scrypt N).
func pow2In(min, spread uint32) operandDecoder {
	return func(ds *datasource.Datasource) (types.Value, error) {
		c, err := ds.GetChoice(spread)
		if err != nil {
			return nil, err
		}
		return types.Uint(uint64(1) << (min + c)), nil
	}
}
