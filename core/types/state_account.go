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
	"io"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/rlp"
	"github.com/holiman/uint256"
)

// StateAccount is the consensus representation of accounts stored in the
// state trie. These objects are keyed by the Keccak-256 hash of the account
// address.
type StateAccount struct {
	Nonce    uint64
	Balance  *uint256.Int
	Root     common.Hash // merkle root of the storage trie
	CodeHash []byte
}

// NewEmptyStateAccount constructs an empty state account.
func NewEmptyStateAccount() *StateAccount {
	return &StateAccount{
		Balance:  new(uint256.Int),
		Root:     EmptyRootHash,
		CodeHash: EmptyCodeHash.Bytes(),
	}
}

// Copy returns a deep-copied state account object.
func (acct *StateAccount) Copy() *StateAccount {
	var balance *uint256.Int
	if acct.Balance != nil {
		balance = new(uint256.Int).Set(acct.Balance)
	}
	return &StateAccount{
		Nonce:    acct.Nonce,
		Balance:  balance,
		Root:     acct.Root,
		CodeHash: common.CopyBytes(acct.CodeHash),
	}
}

// EncodeRLP implements rlp.Encoder with the consensus encoding
// [nonce, balance, storageRoot, codeHash].
func (acct *StateAccount) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	list := eb.List()
	eb.WriteUint64(acct.Nonce)
	eb.WriteUint256(acct.Balance)
	eb.WriteBytes(acct.Root[:])
	eb.WriteBytes(acct.CodeHash)
	eb.ListEnd(list)
	return eb.Flush()
}

// DecodeRLP implements rlp.Decoder.
func (acct *StateAccount) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	if err := s.Decode(&acct.Nonce); err != nil {
		return err
	}
	acct.Balance = new(uint256.Int)
	if err := s.ReadUint256(acct.Balance); err != nil {
		return err
	}
	root, err := decodeHash(s)
	if err != nil {
		return err
	}
	acct.Root = root
	if acct.CodeHash, err = s.Bytes(); err != nil {
		return err
	}
	return s.ListEnd()
}
