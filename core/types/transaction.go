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
	"bytes"
	"errors"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/rlp"
)

var (
	// ErrInvalidSig is returned on transactions with invalid v, r, s values.
	ErrInvalidSig = errors.New("invalid transaction v, r, s values")
)

// Transaction is a nine-field account-model transaction. The consensus
// encoding is the RLP list [nonce, gasPrice, gas, to, value, input, v, r, s];
// the signing hash covers a prefix of those fields depending on the signer.
type Transaction struct {
	data txdata

	// caches
	hash atomic.Value
	from atomic.Value
}

type txdata struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     uint64
	Recipient    *common.Address // nil means contract creation
	Amount       *big.Int
	Payload      []byte

	// Signature values
	V *big.Int
	R *big.Int
	S *big.Int
}

// NewTransaction creates an unsigned message-call transaction.
func NewTransaction(nonce uint64, to common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, &to, amount, gasLimit, gasPrice, data)
}

// NewContractCreation creates an unsigned contract-creation transaction.
func NewContractCreation(nonce uint64, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, nil, amount, gasLimit, gasPrice, data)
}

func newTransaction(nonce uint64, to *common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	if len(data) > 0 {
		data = common.CopyBytes(data)
	}
	d := txdata{
		AccountNonce: nonce,
		Recipient:    to,
		Payload:      data,
		Amount:       new(big.Int),
		GasLimit:     gasLimit,
		Price:        new(big.Int),
		V:            new(big.Int),
		R:            new(big.Int),
		S:            new(big.Int),
	}
	if amount != nil {
		d.Amount.Set(amount)
	}
	if gasPrice != nil {
		d.Price.Set(gasPrice)
	}
	return &Transaction{data: d}
}

// EncodeRLP implements rlp.Encoder.
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	tx.encode(eb)
	return eb.Flush()
}

func (tx *Transaction) encode(w rlp.EncoderBuffer) {
	list := w.List()
	w.WriteUint64(tx.data.AccountNonce)
	w.WriteBigInt(tx.data.Price)
	w.WriteUint64(tx.data.GasLimit)
	if tx.data.Recipient != nil {
		w.WriteBytes(tx.data.Recipient[:])
	} else {
		w.WriteBytes(nil)
	}
	w.WriteBigInt(tx.data.Amount)
	w.WriteBytes(tx.data.Payload)
	w.WriteBigInt(tx.data.V)
	w.WriteBigInt(tx.data.R)
	w.WriteBigInt(tx.data.S)
	w.ListEnd(list)
}

// DecodeRLP implements rlp.Decoder.
func (tx *Transaction) DecodeRLP(s *rlp.Stream) error {
	var d txdata
	if _, err := s.List(); err != nil {
		return err
	}
	if err := s.Decode(&d.AccountNonce); err != nil {
		return err
	}
	var err error
	if d.Price, err = s.BigInt(); err != nil {
		return err
	}
	if err := s.Decode(&d.GasLimit); err != nil {
		return err
	}
	to, err := s.Bytes()
	if err != nil {
		return err
	}
	switch len(to) {
	case 0:
		d.Recipient = nil
	case common.AddressLength:
		addr := common.BytesToAddress(to)
		d.Recipient = &addr
	default:
		return errShortField
	}
	if d.Amount, err = s.BigInt(); err != nil {
		return err
	}
	if d.Payload, err = s.Bytes(); err != nil {
		return err
	}
	if d.V, err = s.BigInt(); err != nil {
		return err
	}
	if d.R, err = s.BigInt(); err != nil {
		return err
	}
	if d.S, err = s.BigInt(); err != nil {
		return err
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	tx.data = d
	return nil
}

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.data.Payload) }

// Gas returns the gas limit of the transaction.
func (tx *Transaction) Gas() uint64 { return tx.data.GasLimit }

// GasPrice returns the gas price of the transaction.
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.data.Price) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return new(big.Int).Set(tx.data.Amount) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() uint64 { return tx.data.AccountNonce }

// To returns the recipient address of the transaction.
// It returns nil if the transaction is a contract creation.
func (tx *Transaction) To() *common.Address {
	if tx.data.Recipient == nil {
		return nil
	}
	to := *tx.data.Recipient
	return &to
}

// RawSignatureValues returns the V, R, S signature values of the transaction.
// The return values should not be modified by the caller.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.data.V, tx.data.R, tx.data.S
}

// Protected reports whether the transaction is replay-protected per EIP-155.
func (tx *Transaction) Protected() bool {
	if tx.data.V == nil {
		return false
	}
	v := tx.data.V.Uint64()
	return v != 27 && v != 28
}

// Cost returns the maximum wei debited from the sender up front:
// gasPrice * gasLimit + value.
func (tx *Transaction) Cost() *big.Int {
	total := new(big.Int).Mul(tx.data.Price, new(big.Int).SetUint64(tx.data.GasLimit))
	total.Add(total, tx.data.Amount)
	return total
}

// Hash returns the transaction hash: the keccak256 hash of the full
// consensus encoding including the signature.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return hash.(common.Hash)
	}
	v := rlpHash(tx)
	tx.hash.Store(v)
	return v
}

// WithSignature returns a new transaction with the given signature.
// This signature needs to be in the [R || S || V] format where V is 0 or 1.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cpy := &Transaction{data: tx.data}
	cpy.data.R, cpy.data.S, cpy.data.V = r, s, v
	return cpy, nil
}

// Transactions implements DerivableList for the transactions trie.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// EncodeIndex encodes the i'th transaction to w.
func (s Transactions) EncodeIndex(i int, w *bytes.Buffer) {
	s[i].EncodeRLP(w)
}
