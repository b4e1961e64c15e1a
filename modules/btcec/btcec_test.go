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

package btcec

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/modules"
	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
	"github.com/stretchr/testify/require"

	"github.com/btcsuite/btcd/btcec/v2"
)

func run(t *testing.T, kind operation.Kind, operands ...types.Value) (types.Value, error) {
	t.Helper()
	op, err := operation.New(kind, operation.Secp256k1, operands, nil)
	require.NoError(t, err)
	return New().Run(op, datasource.New(nil))
}

// parseDER splits a DER-encoded signature into its r and s integers.
func parseDER(t *testing.T, der []byte) (*big.Int, *big.Int) {
	t.Helper()
	require.True(t, len(der) > 4 && der[0] == 0x30 && der[2] == 0x02)
	rLen := int(der[3])
	r := new(big.Int).SetBytes(der[4 : 4+rLen])
	require.Equal(t, byte(0x02), der[4+rLen])
	sLen := int(der[5+rLen])
	s := new(big.Int).SetBytes(der[6+rLen : 6+rLen+sLen])
	return r, s
}

func TestPrivateToPublicGenerator(t *testing.T) {
	res, err := run(t, operation.PrivateToPublic, types.NewBignum(big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t,
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		res.Canonical())
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := new(big.Int).SetUint64(0xdeadbeefcafe)
	msg := []byte("some signed payload")

	sig, err := run(t, operation.ECDSASign, types.NewBignum(priv), types.Bytes(msg))
	require.NoError(t, err)
	der, err := hex.DecodeString(sig.Canonical())
	require.NoError(t, err)
	r, s := parseDER(t, der)

	pub, err := run(t, operation.PrivateToPublic, types.NewBignum(priv))
	require.NoError(t, err)
	pubBytes, err := hex.DecodeString(pub.Canonical())
	require.NoError(t, err)

	res, err := run(t, operation.ECDSAVerify,
		types.Bytes(pubBytes), types.Bytes(msg), types.NewBignum(r), types.NewBignum(s))
	require.NoError(t, err)
	require.Equal(t, "1", res.Canonical())

	// A different message must not verify.
	res, err = run(t, operation.ECDSAVerify,
		types.Bytes(pubBytes), types.Bytes("other payload"), types.NewBignum(r), types.NewBignum(s))
	require.NoError(t, err)
	require.Equal(t, "0", res.Canonical())
}

func TestInvalidSignatureComponents(t *testing.T) {
	pub, err := run(t, operation.PrivateToPublic, types.NewBignum(big.NewInt(7)))
	require.NoError(t, err)
	pubBytes, _ := hex.DecodeString(pub.Canonical())

	n := btcec.S256().Params().N
	for _, rs := range [][2]*big.Int{
		{big.NewInt(0), big.NewInt(1)},
		{big.NewInt(1), big.NewInt(0)},
		{n, big.NewInt(1)},
		{big.NewInt(1), new(big.Int).Add(n, big.NewInt(5))},
	} {
		res, err := run(t, operation.ECDSAVerify,
			types.Bytes(pubBytes), types.Bytes("m"),
			types.NewBignum(rs[0]), types.NewBignum(rs[1]))
		require.NoError(t, err)
		require.Equal(t, "0", res.Canonical())
	}
}

func TestDeclines(t *testing.T) {
	n := btcec.S256().Params().N
	for _, priv := range []*big.Int{big.NewInt(0), big.NewInt(-3), n} {
		_, err := run(t, operation.PrivateToPublic, types.NewBignum(priv))
		require.ErrorIs(t, err, modules.ErrUnsupported)
	}
	// Garbage public key.
	_, err := run(t, operation.ECDHDerive,
		types.NewBignum(big.NewInt(5)), types.Bytes{0x02, 0x01})
	require.ErrorIs(t, err, modules.ErrUnsupported)
}
