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
	"errors"
	"sync"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/rawdb"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/trie"
	"github.com/emberlabs/ember/triedb"
)

// Database is the state access layer: it opens account and storage tries
// against the node database and resolves contract code by hash.
type Database struct {
	triedb *triedb.Database

	codeLock  sync.RWMutex
	codeCache map[common.Hash][]byte
}

// NewDatabase creates a state database on top of the given node database.
func NewDatabase(tdb *triedb.Database) *Database {
	return &Database{
		triedb:    tdb,
		codeCache: make(map[common.Hash][]byte),
	}
}

// OpenTrie opens the main account trie at a specific root hash.
func (db *Database) OpenTrie(root common.Hash) (*trie.StateTrie, error) {
	return trie.NewStateTrie(root, db.triedb)
}

// OpenStorageTrie opens the storage trie of an account.
func (db *Database) OpenStorageTrie(root common.Hash) (*trie.StateTrie, error) {
	return trie.NewStateTrie(root, db.triedb)
}

// ContractCode retrieves a particular contract's code.
func (db *Database) ContractCode(codeHash common.Hash) ([]byte, error) {
	db.codeLock.RLock()
	code, ok := db.codeCache[codeHash]
	db.codeLock.RUnlock()
	if ok {
		return code, nil
	}
	code = rawdb.ReadCode(db.triedb.Disk(), codeHash)
	if len(code) == 0 && codeHash != types.EmptyCodeHash {
		return nil, errors.New("not found")
	}
	db.codeLock.Lock()
	db.codeCache[codeHash] = code
	db.codeLock.Unlock()
	return code, nil
}

// WriteCode persists a particular contract's code.
func (db *Database) WriteCode(codeHash common.Hash, code []byte) {
	rawdb.WriteCode(db.triedb.Disk(), codeHash, code)

	db.codeLock.Lock()
	db.codeCache[codeHash] = code
	db.codeLock.Unlock()
}

// TrieDB retrieves the underlying trie node database.
func (db *Database) TrieDB() *triedb.Database {
	return db.triedb
}
