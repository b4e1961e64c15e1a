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

package stdcrypto

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, kind operation.Kind, alg operation.Algorithm, modifier []byte, operands ...types.Value) (string, error) {
	t.Helper()
	op, err := operation.New(kind, alg, operands, modifier)
	require.NoError(t, err)
	res, err := New().Run(op, datasource.New(modifier))
	if err != nil {
		return "", err
	}
	return res.Canonical(), nil
}

func TestDigestVectors(t *testing.T) {
	tests := []struct {
		alg  operation.Algorithm
		msg  string
		want string
	}{
		{operation.MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{operation.SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{operation.SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{operation.SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{operation.SHA512, "abc",
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, tt := range tests {
		got, err := run(t, operation.Digest, tt.alg, nil, types.Bytes(tt.msg))
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "alg %v", tt.alg)
	}
}

func TestHMACVector(t *testing.T) {
	got, err := run(t, operation.HMAC, operation.SHA256, nil,
		types.Bytes("key"), types.Bytes("The quick brown fox jumps over the lazy dog"))
	require.NoError(t, err)
	require.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got)
}

func TestChunkedDigestAgrees(t *testing.T) {
	msg := types.Bytes("a longer message that the modifier will slice into pieces")
	oneshot, err := run(t, operation.Digest, operation.SHA256, nil, msg)
	require.NoError(t, err)
	// Leading 0x01 turns chunking on; the rest selects the boundaries.
	chunked, err := run(t, operation.Digest, operation.SHA256,
		[]byte{0x01, 0, 0, 0, 3, 0, 0, 0, 9, 0, 0, 0, 1}, msg)
	require.NoError(t, err)
	require.Equal(t, oneshot, chunked)
}

func TestCTRRoundTrip(t *testing.T) {
	key := types.Bytes("0123456789abcdef")
	iv := types.Bytes("fedcba9876543210")
	pt := types.Bytes("counter mode payload")

	ct, err := run(t, operation.CipherEncrypt, operation.AES128CTR, nil, key, iv, types.Bytes{}, pt)
	require.NoError(t, err)
	ctBytes := mustHex(t, ct)
	back, err := run(t, operation.CipherDecrypt, operation.AES128CTR, nil, key, iv, types.Bytes{}, types.Bytes(ctBytes))
	require.NoError(t, err)
	require.Equal(t, pt.Canonical(), back)
}

func TestGCMRoundTripAndTamper(t *testing.T) {
	key := types.Bytes("0123456789abcdef0123456789abcdef")
	nonce := types.Bytes("12-byte-nonc")
	aad := types.Bytes("header")
	pt := types.Bytes("authenticated payload")

	ct, err := run(t, operation.CipherEncrypt, operation.AES256GCM, nil, key, nonce, aad, pt)
	require.NoError(t, err)
	ctBytes := mustHex(t, ct)

	back, err := run(t, operation.CipherDecrypt, operation.AES256GCM, nil, key, nonce, aad, types.Bytes(ctBytes))
	require.NoError(t, err)
	require.Equal(t, pt.Canonical(), back)

	ctBytes[0] ^= 0xff
	_, err = run(t, operation.CipherDecrypt, operation.AES256GCM, nil, key, nonce, aad, types.Bytes(ctBytes))
	require.ErrorIs(t, err, modules.ErrUnsupported)
}

func TestEd25519ZeroSeed(t *testing.T) {
	got, err := run(t, operation.PrivateToPublic, operation.Ed25519, nil,
		types.NewBignum(big.NewInt(0)))
	require.NoError(t, err)
	require.Equal(t, "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29", got)
}

func TestDeclines(t *testing.T) {
	// Unknown digest algorithm for this module.
	_, err := run(t, operation.Digest, operation.SHA3_256, nil, types.Bytes("x"))
	require.ErrorIs(t, err, modules.ErrUnsupported)
	// Bad AES key length.
	_, err = run(t, operation.CipherEncrypt, operation.AES128CTR, nil,
		types.Bytes("short"), types.Bytes("fedcba9876543210"), types.Bytes{}, types.Bytes("m"))
	require.ErrorIs(t, err, modules.ErrUnsupported)
	// Wrong GCM nonce length.
	_, err = run(t, operation.CipherEncrypt, operation.AES256GCM, nil,
		types.Bytes("0123456789abcdef0123456789abcdef"), types.Bytes("shortnonce"),
		types.Bytes{}, types.Bytes("m"))
	require.ErrorIs(t, err, modules.ErrUnsupported)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	out, err := hex.DecodeString(s)
	require.NoError(t, err)
	return out
}
