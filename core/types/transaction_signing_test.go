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

package types

import (
	"math/big"
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/rlp"
)

func TestHomesteadSigning(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)

	signer := HomesteadSigner{}
	tx, err := SignTx(NewTransaction(0, addr, new(big.Int), 21000, big.NewInt(1), nil), signer, key)
	if err != nil {
		t.Fatal(err)
	}
	from, err := Sender(signer, tx)
	if err != nil {
		t.Fatal(err)
	}
	if from != addr {
		t.Errorf("expected from and address to be equal. Got %x want %x", from, addr)
	}
	if tx.Protected() {
		t.Error("homestead transaction must not be replay protected")
	}
}

func TestEIP155Signing(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)

	signer := NewEIP155Signer(big.NewInt(18))
	tx, err := SignTx(NewTransaction(0, addr, new(big.Int), 21000, big.NewInt(1), nil), signer, key)
	if err != nil {
		t.Fatal(err)
	}
	from, err := Sender(signer, tx)
	if err != nil {
		t.Fatal(err)
	}
	if from != addr {
		t.Errorf("expected from and address to be equal. Got %x want %x", from, addr)
	}
	if !tx.Protected() {
		t.Error("EIP-155 transaction must be replay protected")
	}
}

func TestEIP155ChainId(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)

	signer := NewEIP155Signer(big.NewInt(18))
	tx, err := SignTx(NewTransaction(0, addr, new(big.Int), 21000, big.NewInt(1), nil), signer, key)
	if err != nil {
		t.Fatal(err)
	}
	// A signer configured for a different chain must not recover the sender.
	if _, err := Sender(NewEIP155Signer(big.NewInt(19)), tx); err == nil {
		t.Error("expected error on wrong chain id, got nil")
	}
}

func TestTransactionEncode(t *testing.T) {
	// Transaction from an early main network block; the signature is real.
	txEnc := common.FromHex("f85f800a82c35094095e7baea6a6c7c4c2dfeb977efac326af552d870a801ba09bea4c4daac7c7c52e093e6a4c35dbbcf8856f1af7b059ba20253e70848d094fa08a8fae537ce25ed8cb5af9adac3f141af69bd515bd2ba031522df09b97dd72b1")
	tx := new(Transaction)
	if err := rlp.DecodeBytes(txEnc, tx); err != nil {
		t.Fatal(err)
	}
	reenc, err := rlp.EncodeToBytes(tx)
	if err != nil {
		t.Fatal(err)
	}
	if string(reenc) != string(txEnc) {
		t.Errorf("re-encoding mismatch:\ngot  %x\nwant %x", reenc, txEnc)
	}
	if _, err := Sender(HomesteadSigner{}, tx); err != nil {
		t.Errorf("sender recovery failed: %v", err)
	}
}

func TestSignatureCache(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)
	signer := HomesteadSigner{}

	tx, _ := SignTx(NewContractCreation(1, big.NewInt(5), 100000, big.NewInt(3), []byte{0x00}), signer, key)
	first, err := Sender(signer, tx)
	if err != nil {
		t.Fatal(err)
	}
	// Second call comes out of the cache and must agree.
	second, err := Sender(signer, tx)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first != addr {
		t.Errorf("cached sender mismatch: %x, %x, want %x", first, second, addr)
	}
}
