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

package triedb

import (
	"bytes"
	"testing"

	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/ethdb/memorydb"
)

func TestDatabaseBufferedReads(t *testing.T) {
	db := NewDatabase(memorydb.New(), nil)

	blob := []byte("some encoded trie node, at least 32 bytes long")
	hash := crypto.Keccak256Hash(blob)

	// A buffered node is readable before commit, but not on disk yet.
	db.Insert(hash, blob)
	if got, _ := db.Node(hash); !bytes.Equal(got, blob) {
		t.Fatalf("buffered node unreadable: %x", got)
	}
	if ok, _ := db.Disk().Has(hash[:]); ok {
		t.Fatal("node hit disk before commit")
	}
	if db.DirtyCount() != 1 {
		t.Fatalf("dirty count %d, want 1", db.DirtyCount())
	}

	// After commit the buffer drains to disk and reads keep working.
	if err := db.Commit(); err != nil {
		t.Fatal(err)
	}
	if db.DirtyCount() != 0 {
		t.Fatalf("dirty count %d after commit, want 0", db.DirtyCount())
	}
	if ok, _ := db.Disk().Has(hash[:]); !ok {
		t.Fatal("node missing from disk after commit")
	}
	if got, _ := db.Node(hash); !bytes.Equal(got, blob) {
		t.Fatalf("committed node unreadable: %x", got)
	}
}

func TestDatabaseMissingNode(t *testing.T) {
	db := NewDatabase(memorydb.New(), nil)
	blob, err := db.Node(crypto.Keccak256Hash([]byte("nothing here")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob != nil {
		t.Fatalf("unexpected node: %x", blob)
	}
}

func TestDatabaseIdempotentInsert(t *testing.T) {
	db := NewDatabase(memorydb.New(), nil)
	blob := []byte("some encoded trie node, at least 32 bytes long")
	hash := crypto.Keccak256Hash(blob)

	db.Insert(hash, blob)
	db.Insert(hash, blob)
	if db.DirtyCount() != 1 {
		t.Fatalf("dirty count %d, want 1", db.DirtyCount())
	}
}
