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

// Package triedb sits between the trie and the disk database. Newly produced
// trie nodes accumulate in an in-memory write buffer until Commit flushes
// them; reads fall through buffer, clean cache and disk in that order. The
// store is content addressed, so writes are idempotent and nothing is ever
// deleted.
package triedb

import (
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/ethdb"
	"github.com/emberlabs/ember/log"
)

// cleanCacheSize is the amount of memory granted to the cache of recently
// read clean nodes.
const cleanCacheSize = 16 * 1024 * 1024

// Config defines the tunable parameters of the node database.
type Config struct {
	// CleanCacheSize overrides the default clean cache size in bytes.
	// Zero selects the default; a negative value disables the cache.
	CleanCacheSize int
}

// Database is the node database: a content-addressed store of RLP-encoded
// trie nodes keyed by their Keccak-256 hash.
//
// The database is safe for concurrent readers. Concurrent writers need an
// external serialization discipline, such as committing one block at a time.
type Database struct {
	disk   ethdb.KeyValueStore
	cleans *fastcache.Cache // may be nil, cache of clean nodes read from disk

	lock    sync.RWMutex
	dirties map[common.Hash][]byte // uncommitted nodes produced by trie commits
}

// NewDatabase creates a node database on top of the given disk store.
func NewDatabase(disk ethdb.KeyValueStore, config *Config) *Database {
	size := cleanCacheSize
	if config != nil && config.CleanCacheSize != 0 {
		size = config.CleanCacheSize
	}
	var cleans *fastcache.Cache
	if size > 0 {
		cleans = fastcache.New(size)
	}
	return &Database{
		disk:    disk,
		cleans:  cleans,
		dirties: make(map[common.Hash][]byte),
	}
}

// Node retrieves the RLP-encoded node with the given hash. A nil return with
// no error means the node is not present anywhere; the trie layer turns that
// into a MissingNodeError.
func (db *Database) Node(hash common.Hash) ([]byte, error) {
	db.lock.RLock()
	dirty, ok := db.dirties[hash]
	db.lock.RUnlock()
	if ok {
		return dirty, nil
	}
	if db.cleans != nil {
		if enc := db.cleans.Get(nil, hash[:]); len(enc) > 0 {
			return enc, nil
		}
	}
	enc, err := db.disk.Get(hash[:])
	if err != nil || len(enc) == 0 {
		// The disk backends report missing keys as errors. The node store
		// has no other failure mode for reads, so a miss is a miss.
		return nil, nil
	}
	if db.cleans != nil {
		db.cleans.Set(hash[:], enc)
	}
	return enc, nil
}

// Insert adds an encoded node to the write buffer. The blob is retained
// by the database, callers must not mutate it afterwards.
func (db *Database) Insert(hash common.Hash, blob []byte) {
	db.lock.Lock()
	defer db.lock.Unlock()

	if _, ok := db.dirties[hash]; ok {
		return // content addressed, same hash is the same bytes
	}
	db.dirties[hash] = blob
}

// Commit flushes the write buffer to the disk store. Flushed nodes move to
// the clean cache so that a subsequent read does not hit disk.
func (db *Database) Commit() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	batch := db.disk.NewBatch()
	for hash, blob := range db.dirties {
		if err := batch.Put(hash[:], blob); err != nil {
			return err
		}
		if batch.ValueSize() >= ethdb.IdealBatchSize {
			if err := batch.Write(); err != nil {
				return err
			}
			batch.Reset()
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	if db.cleans != nil {
		for hash, blob := range db.dirties {
			db.cleans.Set(hash[:], blob)
		}
	}
	count := len(db.dirties)
	db.dirties = make(map[common.Hash][]byte)
	log.Debug("Persisted trie nodes", "count", count)
	return nil
}

// DirtyCount returns the number of buffered, not yet persisted nodes.
func (db *Database) DirtyCount() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.dirties)
}

// Disk returns the underlying disk store, for layers that intermix trie
// nodes with other chain data.
func (db *Database) Disk() ethdb.KeyValueStore {
	return db.disk
}
