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

package memorydb

import (
	"bytes"
	"testing"
)

func TestMemoryDB(t *testing.T) {
	db := New()
	key, value := []byte("key"), []byte("value")

	if ok, _ := db.Has(key); ok {
		t.Error("unexpected key")
	}
	if err := db.Put(key, value); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.Has(key); !ok {
		t.Error("missing key")
	}
	got, err := db.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("got %q, want %q", got, value)
	}
	// The store hands out copies, mutating them must not corrupt the db.
	got[0] = 'x'
	if again, _ := db.Get(key); !bytes.Equal(again, value) {
		t.Error("stored value was mutated through a read")
	}
	if _, err := db.Get([]byte("absent")); err == nil {
		t.Error("expected not-found error")
	}
}

func TestMemoryDBBatch(t *testing.T) {
	db := New()
	batch := db.NewBatch()

	batch.Put([]byte("1"), []byte("a"))
	batch.Put([]byte("2"), []byte("b"))
	if batch.ValueSize() == 0 {
		t.Error("batch reports zero size")
	}
	if db.Len() != 0 {
		t.Error("batch leaked before write")
	}
	if err := batch.Write(); err != nil {
		t.Fatal(err)
	}
	if db.Len() != 2 {
		t.Errorf("db has %d entries, want 2", db.Len())
	}
	batch.Reset()
	if batch.ValueSize() != 0 {
		t.Error("reset batch reports non-zero size")
	}
}

func TestMemoryDBClose(t *testing.T) {
	db := New()
	db.Close()
	if err := db.Put([]byte("k"), []byte("v")); err != errMemorydbClosed {
		t.Errorf("got %v, want %v", err, errMemorydbClosed)
	}
	if _, err := db.Get([]byte("k")); err != errMemorydbClosed {
		t.Errorf("got %v, want %v", err, errMemorydbClosed)
	}
}
