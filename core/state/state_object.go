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

package state

import (
	"fmt"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/rlp"
	"github.com/emberlabs/ember/trie"
	"github.com/holiman/uint256"
)

// Storage is an in-memory cache of an account's storage slots.
type Storage map[common.Hash]common.Hash

// Copy duplicates the storage cache.
func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for key, value := range s {
		cpy[key] = value
	}
	return cpy
}

// stateObject represents an Ethereum account which is being modified.
//
// The usage pattern is as follows:
//   - First you need to obtain a state object.
//   - Account values as well as storages can be accessed and modified through the object.
//   - Finally, call commit to return the changes of storage trie and update account data.
type stateObject struct {
	db       *StateDB
	address  common.Address      // address of ethereum account
	addrHash common.Hash         // hash of ethereum address of the account
	data     types.StateAccount  // Account data with all mutations applied in the scope of block

	// Write caches.
	trie *trie.StateTrie // storage trie, which becomes non-nil on first access
	code []byte          // contract bytecode, which gets set when code is loaded

	originStorage Storage // Storage entries that have been accessed within the current block
	dirtyStorage  Storage // Storage entries that have been modified within the current transaction

	// Cache flags.
	dirtyCode bool // true if the code was updated

	// Flag whether the account was marked as self-destructed. The self-destructed
	// account is still accessible in the scope of same transaction.
	selfDestructed bool
}

// newObject creates a state object.
func newObject(db *StateDB, address common.Address, acct *types.StateAccount) *stateObject {
	if acct == nil {
		acct = types.NewEmptyStateAccount()
	}
	return &stateObject{
		db:            db,
		address:       address,
		addrHash:      crypto.Keccak256Hash(address[:]),
		data:          *acct,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

// empty returns whether the account is considered empty.
func (s *stateObject) empty() bool {
	return s.data.Nonce == 0 && s.data.Balance.IsZero() && common.BytesToHash(s.data.CodeHash) == types.EmptyCodeHash
}

func (s *stateObject) markSelfdestructed() {
	s.selfDestructed = true
}

// getTrie returns the associated storage trie, opening it if necessary.
func (s *stateObject) getTrie() (*trie.StateTrie, error) {
	if s.trie == nil {
		tr, err := s.db.db.OpenStorageTrie(s.data.Root)
		if err != nil {
			return nil, err
		}
		s.trie = tr
	}
	return s.trie, nil
}

// GetState retrieves a value from the account storage trie.
func (s *stateObject) GetState(key common.Hash) common.Hash {
	// If we have a dirty value for this state entry, return it
	value, dirty := s.dirtyStorage[key]
	if dirty {
		return value
	}
	// Otherwise return the entry's original value
	return s.GetCommittedState(key)
}

// GetCommittedState retrieves a value from the committed account storage trie.
func (s *stateObject) GetCommittedState(key common.Hash) common.Hash {
	// If we have a cached value, return it
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	// Otherwise load the value from the trie
	tr, err := s.getTrie()
	if err != nil {
		s.db.setError(err)
		return common.Hash{}
	}
	enc, err := tr.Get(key.Bytes())
	if err != nil {
		s.db.setError(err)
		return common.Hash{}
	}
	var value common.Hash
	if len(enc) > 0 {
		_, content, _, err := rlp.Split(enc)
		if err != nil {
			s.db.setError(err)
		}
		value.SetBytes(content)
	}
	s.originStorage[key] = value
	return value
}

// SetState updates a value in account storage.
func (s *stateObject) SetState(key, value common.Hash) {
	// If the new value is the same as old, don't set
	prev := s.GetState(key)
	if prev == value {
		return
	}
	// New value is different, update and journal the change
	s.db.journal.append(storageChange{
		account:  &s.address,
		key:      key,
		prevalue: prev,
	})
	s.setState(key, value)
}

func (s *stateObject) setState(key, value common.Hash) {
	s.dirtyStorage[key] = value
}

// updateTrie writes cached storage modifications into the object's storage
// trie. The zero value deletes the slot; any other value is stored as the
// RLP of its big-endian form with leading zeroes removed.
func (s *stateObject) updateTrie() (*trie.StateTrie, error) {
	if len(s.dirtyStorage) == 0 {
		return s.trie, nil
	}
	tr, err := s.getTrie()
	if err != nil {
		s.db.setError(err)
		return nil, err
	}
	for key, value := range s.dirtyStorage {
		if value == (common.Hash{}) {
			if err := tr.Delete(key.Bytes()); err != nil {
				s.db.setError(err)
				return nil, err
			}
		} else {
			// Encoding []byte cannot fail, ok to ignore the error.
			v, _ := rlp.EncodeToBytes(common.TrimLeftZeroes(value[:]))
			if err := tr.Update(key.Bytes(), v); err != nil {
				s.db.setError(err)
				return nil, err
			}
		}
		s.originStorage[key] = value
		delete(s.dirtyStorage, key)
	}
	return tr, nil
}

// updateRoot flushes cached storage mutations and recomputes the storage root.
func (s *stateObject) updateRoot() {
	tr, err := s.updateTrie()
	if err != nil || tr == nil {
		return
	}
	s.data.Root = tr.Hash()
}

// commit flushes cached storage mutations and writes the trie nodes of the
// storage trie into the node database.
func (s *stateObject) commit() error {
	tr, err := s.updateTrie()
	if err != nil {
		return err
	}
	if tr == nil {
		return nil
	}
	root, err := tr.Commit()
	if err != nil {
		return err
	}
	s.data.Root = root
	return nil
}

// AddBalance adds amount to s's balance.
// It is used to add funds to the destination account of a transfer.
func (s *stateObject) AddBalance(amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	s.SetBalance(new(uint256.Int).Add(s.Balance(), amount))
}

// SubBalance removes amount from s's balance.
// It is used to remove funds from the origin account of a transfer.
func (s *stateObject) SubBalance(amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	s.SetBalance(new(uint256.Int).Sub(s.Balance(), amount))
}

// SetBalance sets the balance to the given amount, journalling the change.
func (s *stateObject) SetBalance(amount *uint256.Int) {
	s.db.journal.append(balanceChange{
		account: &s.address,
		prev:    new(uint256.Int).Set(s.data.Balance),
	})
	s.setBalance(amount)
}

func (s *stateObject) setBalance(amount *uint256.Int) {
	s.data.Balance = amount
}

func (s *stateObject) deepCopy(db *StateDB) *stateObject {
	obj := &stateObject{
		db:             db,
		address:        s.address,
		addrHash:       s.addrHash,
		data:           *s.data.Copy(),
		code:           s.code,
		originStorage:  s.originStorage.Copy(),
		dirtyStorage:   s.dirtyStorage.Copy(),
		dirtyCode:      s.dirtyCode,
		selfDestructed: s.selfDestructed,
	}
	if s.trie != nil {
		obj.trie = s.trie.Copy()
	}
	return obj
}

//
// Attribute accessors
//

// Address returns the address of the contract/account
func (s *stateObject) Address() common.Address {
	return s.address
}

// Code returns the contract code associated with this object, if any.
func (s *stateObject) Code() []byte {
	if len(s.code) != 0 {
		return s.code
	}
	if common.BytesToHash(s.data.CodeHash) == types.EmptyCodeHash {
		return nil
	}
	code, err := s.db.db.ContractCode(common.BytesToHash(s.data.CodeHash))
	if err != nil {
		s.db.setError(fmt.Errorf("can't load code hash %x: %v", s.data.CodeHash, err))
	}
	s.code = code
	return code
}

// CodeSize returns the size of the contract code associated with this object.
func (s *stateObject) CodeSize() int {
	return len(s.Code())
}

// SetCode installs the given bytecode, journalling the previous value.
func (s *stateObject) SetCode(codeHash common.Hash, code []byte) {
	prevcode := s.Code()
	s.db.journal.append(codeChange{
		account:  &s.address,
		prevhash: s.data.CodeHash,
		prevcode: prevcode,
	})
	s.setCode(codeHash, code)
}

func (s *stateObject) setCode(codeHash common.Hash, code []byte) {
	s.code = code
	s.data.CodeHash = codeHash[:]
	s.dirtyCode = true
}

// SetNonce sets the account nonce, journalling the previous value.
func (s *stateObject) SetNonce(nonce uint64) {
	s.db.journal.append(nonceChange{
		account: &s.address,
		prev:    s.data.Nonce,
	})
	s.setNonce(nonce)
}

func (s *stateObject) setNonce(nonce uint64) {
	s.data.Nonce = nonce
}

// CodeHash returns the hash of the contract code, if any.
func (s *stateObject) CodeHash() []byte {
	return s.data.CodeHash
}

// Balance returns the account balance.
func (s *stateObject) Balance() *uint256.Int {
	return s.data.Balance
}

// Nonce returns the account nonce.
func (s *stateObject) Nonce() uint64 {
	return s.data.Nonce
}
