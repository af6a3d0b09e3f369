// Copyright 2025 The ember Authors
// This file is part of the ember library.
//
// The ember library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ember library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ember library. If not, see <http://www.gnu.org/licenses/>.

package crypto

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/stretchr/testify/require"
)

func bigFromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

var testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
var testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp := common.FromHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	h := Keccak256(msg)
	if !bytes.Equal(h, exp) {
		t.Errorf("hash mismatch: got %x, want %x", h, exp)
	}
	if hh := Keccak256Hash(msg); !bytes.Equal(hh[:], exp) {
		t.Errorf("hash mismatch: got %x, want %x", hh, exp)
	}
}

func TestKeccak256Empty(t *testing.T) {
	exp := common.HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if h := Keccak256Hash(nil); h != exp {
		t.Errorf("empty hash mismatch: got %x, want %x", h, exp)
	}
}

func TestHashData(t *testing.T) {
	kh := NewKeccakState()
	h := HashData(kh, []byte("abc"))
	require.Equal(t, common.HexToHash("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"), h)
	// The state must be reusable.
	h = HashData(kh, []byte("abc"))
	require.Equal(t, common.HexToHash("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"), h)
}

func TestSign(t *testing.T) {
	key, err := HexToECDSA(testPrivHex)
	require.NoError(t, err)
	addr := common.HexToAddress(testAddrHex)

	msg := Keccak256([]byte("foo"))
	sig, err := Sign(msg, key)
	require.NoError(t, err)

	recoveredPub, err := Ecrecover(msg, sig)
	require.NoError(t, err)
	pubKey, err := UnmarshalPubkey(recoveredPub)
	require.NoError(t, err)
	recoveredAddr := PubkeyToAddress(*pubKey)
	require.Equal(t, addr, recoveredAddr)

	// should be equal to SigToPub
	recoveredPub2, err := SigToPub(msg, sig)
	require.NoError(t, err)
	recoveredAddr2 := PubkeyToAddress(*recoveredPub2)
	require.Equal(t, addr, recoveredAddr2)
}

func TestInvalidSign(t *testing.T) {
	if _, err := Sign(make([]byte, 1), nil); err == nil {
		t.Errorf("expected sign with hash 1 byte to error")
	}
	if _, err := Sign(make([]byte, 33), nil); err == nil {
		t.Errorf("expected sign with hash 33 byte to error")
	}
}

func TestVerifySignature(t *testing.T) {
	key, _ := GenerateKey()
	msg := Keccak256([]byte("verify me"))
	sig, err := Sign(msg, key)
	require.NoError(t, err)

	pub := FromECDSAPub(&key.PublicKey)
	if !VerifySignature(pub, msg, sig[:64]) {
		t.Error("signature did not verify")
	}
	// Flipping a bit must break verification.
	sig[10] ^= 0x01
	if VerifySignature(pub, msg, sig[:64]) {
		t.Error("tampered signature verified")
	}
}

func TestNewContractAddress(t *testing.T) {
	key, _ := HexToECDSA(testPrivHex)
	addr := common.HexToAddress(testAddrHex)
	genAddr := PubkeyToAddress(key.PublicKey)
	require.Equal(t, addr, genAddr, "address generation mismatch")

	caddr0 := CreateAddress(addr, 0)
	caddr1 := CreateAddress(addr, 1)
	caddr2 := CreateAddress(addr, 2)
	require.Equal(t, common.HexToAddress("333c3310824b7c685133f2bedb2ca4b8b4df633d"), caddr0)
	require.Equal(t, common.HexToAddress("8bda78331c916a08481428e4b07c96d3e916d165"), caddr1)
	require.Equal(t, common.HexToAddress("c9ddedf451bc62ce88bf9292afb13df35b670699"), caddr2)
}

func TestValidateSignatureValues(t *testing.T) {
	check := func(expected bool, v byte, r, s string) {
		rb := common.FromHex(r)
		sb := common.FromHex(s)
		if ValidateSignatureValues(v, bigFromBytes(rb), bigFromBytes(sb), false) != expected {
			t.Errorf("mismatch for v: %d r: %s s: %s want: %v", v, r, s, expected)
		}
	}
	// zero r and s are invalid
	check(false, 0, "00", "01")
	check(false, 0, "01", "00")
	// correct v, r, s
	check(true, 0, "01", "01")
	check(true, 1, "01", "01")
	// incorrect v
	check(false, 2, "01", "01")
}
