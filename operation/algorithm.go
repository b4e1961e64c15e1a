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

import "fmt"

// Algorithm is a per-kind sub-algorithm selector: the hash for Digest/HMAC
// and the hash-parameterized KDFs, the cipher for CipherEncrypt/Decrypt, the
// curve for the ECC kinds and the variant for Argon2. Kinds without a
// selector carry AlgNone.
type Algorithm uint32

const (
	AlgNone Algorithm = iota

	// Hashes.
	MD4
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	RIPEMD160
	SHA3_256
	SHA3_512
	Keccak256
	Blake2b256
	Blake2b512
	Blake2s256

	// Ciphers.
	AES128CTR
	AES256CTR
	AES128GCM
	AES256GCM
	ChaCha20
	ChaCha20Poly1305

	// Curves.
	Secp256k1
	Ed25519
	X25519

	// Argon2 variants.
	Argon2i
	Argon2id

	numAlgorithms
)

var algorithmNames = [numAlgorithms]string{
	AlgNone: "none",
	MD4:     "MD4", MD5: "MD5", SHA1: "SHA1", SHA224: "SHA224",
	SHA256: "SHA256", SHA384: "SHA384", SHA512: "SHA512",
	RIPEMD160: "RIPEMD160", SHA3_256: "SHA3-256", SHA3_512: "SHA3-512",
	Keccak256: "Keccak256", Blake2b256: "BLAKE2b-256",
	Blake2b512: "BLAKE2b-512", Blake2s256: "BLAKE2s-256",
	AES128CTR: "AES-128-CTR", AES256CTR: "AES-256-CTR",
	AES128GCM: "AES-128-GCM", AES256GCM: "AES-256-GCM",
	ChaCha20: "ChaCha20", ChaCha20Poly1305: "ChaCha20-Poly1305",
	Secp256k1: "secp256k1", Ed25519: "ed25519", X25519: "x25519",
	Argon2i: "Argon2i", Argon2id: "Argon2id",
}

func (a Algorithm) String() string {
	if a < numAlgorithms {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", uint32(a))
}

type family uint8

const (
	famNone family = iota
	famHash
	famCipher
	famCurve
	famArgon2
)

var (
	hashAlgorithms = []Algorithm{
		MD4, MD5, SHA1, SHA224, SHA256, SHA384, SHA512, RIPEMD160,
		SHA3_256, SHA3_512, Keccak256, Blake2b256, Blake2b512, Blake2s256,
	}
	cipherAlgorithms = []Algorithm{
		AES128CTR, AES256CTR, AES128GCM, AES256GCM, ChaCha20, ChaCha20Poly1305,
	}
	curveAlgorithms  = []Algorithm{Secp256k1, Ed25519, X25519}
	argon2Algorithms = []Algorithm{Argon2i, Argon2id}
)

// algorithmFamily maps a kind to the selector family it decodes.
func algorithmFamily(k Kind) family {
	switch k {
	case Digest, HMAC, PBKDF2, HKDF:
		return famHash
	case CipherEncrypt, CipherDecrypt:
		return famCipher
	case PrivateToPublic, ECDSASign, ECDSAVerify, ECDHDerive:
		return famCurve
	case Argon2:
		return famArgon2
	default:
		return famNone
	}
}

func familyMembers(f family) []Algorithm {
	switch f {
	case famHash:
		return hashAlgorithms
	case famCipher:
		return cipherAlgorithms
	case famCurve:
		return curveAlgorithms
	case famArgon2:
		return argon2Algorithms
	default:
		return nil
	}
}

func (a Algorithm) inFamily(f family) bool {
	for _, m := range familyMembers(f) {
		if m == a {
			return true
		}
	}
	return false
}

// KeySize returns the key length in bytes a cipher algorithm requires, or 0
// for non-cipher algorithms.
func (a Algorithm) KeySize() int {
	switch a {
	case AES128CTR, AES128GCM:
		return 16
	case AES256CTR, AES256GCM, ChaCha20, ChaCha20Poly1305:
		return 32
	default:
		return 0
	}
}

// NonceSize returns the nonce/IV length in bytes a cipher algorithm
// requires, or 0 for non-cipher algorithms.
func (a Algorithm) NonceSize() int {
	switch a {
	case AES128CTR, AES256CTR:
		return 16
	case AES128GCM, AES256GCM, ChaCha20, ChaCha20Poly1305:
		return 12
	default:
		return 0
	}
}
