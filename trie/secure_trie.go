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

package trie

import (
	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/triedb"
)

// StateTrie wraps a trie with key hashing. In a state trie, all access
// operations hash the key using keccak256. This prevents calling code from
// creating long chains of nodes that increase the access time.
//
// StateTrie is not safe for concurrent use.
type StateTrie struct {
	trie       Trie
	hashKeyBuf [common.HashLength]byte
}

// NewStateTrie creates a state trie with an existing root node from a
// backing database.
func NewStateTrie(root common.Hash, db *triedb.Database) (*StateTrie, error) {
	trie, err := New(root, db)
	if err != nil {
		return nil, err
	}
	return &StateTrie{trie: *trie}, nil
}

// Get returns the value for the keccak256 hash of key stored in the trie.
func (t *StateTrie) Get(key []byte) ([]byte, error) {
	return t.trie.Get(t.hashKey(key))
}

// Update associates the keccak256 hash of key with value in the trie.
func (t *StateTrie) Update(key, value []byte) error {
	return t.trie.Update(t.hashKey(key), value)
}

// Delete removes any existing value for the keccak256 hash of key from the trie.
func (t *StateTrie) Delete(key []byte) error {
	return t.trie.Delete(t.hashKey(key))
}

// Hash returns the root hash of the trie. It does not write to the
// database and can be used even if the trie doesn't have one.
func (t *StateTrie) Hash() common.Hash {
	return t.trie.Hash()
}

// Commit writes all dirty nodes into the trie's node database and returns
// the root hash.
func (t *StateTrie) Commit() (common.Hash, error) {
	return t.trie.Commit()
}

// Copy returns a copy of StateTrie.
func (t *StateTrie) Copy() *StateTrie {
	return &StateTrie{
		trie:       *t.trie.Copy(),
		hashKeyBuf: t.hashKeyBuf,
	}
}

// hashKey returns the hash of key as an ephemeral buffer.
// The caller must not hold onto the return value because it will become
// invalid on the next call to hashKey.
func (t *StateTrie) hashKey(key []byte) []byte {
	h := newHasher()
	h.sha.Reset()
	h.sha.Write(key)
	h.sha.Read(t.hashKeyBuf[:])
	returnHasherToPool(h)
	return t.hashKeyBuf[:]
}
