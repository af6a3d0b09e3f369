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
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb/memorydb"
	"github.com/emberlabs/ember/triedb"
)

func init() {
	spew.Config.Indent = "    "
	spew.Config.DisableMethods = false
}

func newTestDatabase() *triedb.Database {
	return triedb.NewDatabase(memorydb.New(), nil)
}

func TestEmptyTrie(t *testing.T) {
	trie := NewEmpty(newTestDatabase())
	res := trie.Hash()
	exp := types.EmptyRootHash
	if res != exp {
		t.Errorf("expected %x got %x", exp, res)
	}
	// The well-known constant: keccak256(rlp("")).
	if exp != common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421") {
		t.Errorf("empty root constant mismatch")
	}
}

func TestNull(t *testing.T) {
	trie := NewEmpty(newTestDatabase())
	key := make([]byte, 32)
	value := []byte("test")
	trie.MustUpdate(key, value)
	if !bytes.Equal(trie.MustGet(key), value) {
		t.Fatal("wrong value")
	}
}

func TestMissingRoot(t *testing.T) {
	root := common.HexToHash("0beec7b5ea3f0fdbc95d0dd47f3c5bc275da8a33")
	trie, err := New(root, newTestDatabase())
	if trie != nil {
		t.Error("New returned non-nil trie for invalid root")
	}
	if _, ok := err.(*MissingNodeError); !ok {
		t.Errorf("New returned wrong error: %v", err)
	}
}

func TestMissingNode(t *testing.T) {
	db := newTestDatabase()
	trie := NewEmpty(db)
	updateString(trie, "120000", "qwerqwerqwerqwerqwerqwerqwerqwer")
	updateString(trie, "123456", "asdfasdfasdfasdfasdfasdfasdfasdf")
	root, _ := trie.Commit()
	if err := db.Commit(); err != nil {
		t.Fatal(err)
	}

	// Reopening from the disk store alone, with the clean cache disabled,
	// resolves the committed nodes.
	diskOnly := triedb.NewDatabase(db.Disk(), &triedb.Config{CleanCacheSize: -1})
	trie, _ = New(root, diskOnly)
	if _, err := trie.Get([]byte("120000")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Drop every stored node by pointing the trie at a fresh disk store
	// and resolve through the stale root.
	empty := triedb.NewDatabase(memorydb.New(), nil)
	if _, err := New(root, empty); err == nil {
		t.Error("expected MissingNodeError, got nil")
	} else if _, ok := err.(*MissingNodeError); !ok {
		t.Errorf("expected MissingNodeError, got %v", err)
	}
}

func TestInsert(t *testing.T) {
	trie := NewEmpty(newTestDatabase())

	updateString(trie, "doe", "reindeer")
	updateString(trie, "dog", "puppy")
	updateString(trie, "dogglesworth", "cat")

	exp := common.HexToHash("8aad789dff2f538bca5d8ea56e8abe10f4c7ba3a5dea95fea4cd6e7c3a1168d3")
	root := trie.Hash()
	if root != exp {
		t.Errorf("case 1: exp %x got %x", exp, root)
	}

	trie = NewEmpty(newTestDatabase())
	updateString(trie, "A", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	exp = common.HexToHash("d23786fb4a010da3ce639d66d5e904a11dbc02746d1ce25029e53290cabf28ab")
	root, err := trie.Commit()
	if err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if root != exp {
		t.Errorf("case 2: exp %x got %x", exp, root)
	}
}

func TestGet(t *testing.T) {
	db := newTestDatabase()
	trie := NewEmpty(db)
	updateString(trie, "doe", "reindeer")
	updateString(trie, "dog", "puppy")
	updateString(trie, "dogglesworth", "cat")

	for i := 0; i < 2; i++ {
		res := getString(trie, "dog")
		if !bytes.Equal(res, []byte("puppy")) {
			t.Errorf("expected puppy got %x", res)
		}
		unknown := getString(trie, "unknown")
		if unknown != nil {
			t.Errorf("expected nil got %x", unknown)
		}
		if i == 1 {
			return
		}
		root, _ := trie.Commit()
		if err := db.Commit(); err != nil {
			t.Fatal(err)
		}
		trie, _ = New(root, db)
	}
}

func TestDelete(t *testing.T) {
	trie := NewEmpty(newTestDatabase())
	vals := []struct{ k, v string }{
		{"do", "verb"},
		{"ether", "wookiedoo"},
		{"horse", "stallion"},
		{"shaman", "horse"},
		{"doge", "coin"},
		{"ether", ""},
		{"dog", "puppy"},
		{"shaman", ""},
	}
	for _, val := range vals {
		if val.v != "" {
			updateString(trie, val.k, val.v)
		} else {
			deleteString(trie, val.k)
		}
	}

	hash := trie.Hash()
	exp := common.HexToHash("5991bb8c6514148a29db676a14ac506cd2cd5775ace63c30a4fe457715e9ac84")
	if hash != exp {
		t.Errorf("expected %x got %x", exp, hash)
	}
}

func TestEmptyValues(t *testing.T) {
	trie := NewEmpty(newTestDatabase())

	vals := []struct{ k, v string }{
		{"do", "verb"},
		{"ether", "wookiedoo"},
		{"horse", "stallion"},
		{"shaman", "horse"},
		{"doge", "coin"},
		{"ether", ""},
		{"dog", "puppy"},
		{"shaman", ""},
	}
	for _, val := range vals {
		updateString(trie, val.k, val.v)
	}

	hash := trie.Hash()
	exp := common.HexToHash("5991bb8c6514148a29db676a14ac506cd2cd5775ace63c30a4fe457715e9ac84")
	if hash != exp {
		t.Errorf("expected %x got %x", exp, hash)
	}
}

// TestInsertOrderIndependence checks that the root hash is a function of the
// logical key-value map, whatever order the pairs go in.
func TestInsertOrderIndependence(t *testing.T) {
	pairs := [][2]string{
		{"do", "verb"},
		{"ether", "wookiedoo"},
		{"horse", "stallion"},
		{"shaman", "horse"},
		{"doge", "coin"},
		{"dog", "puppy"},
		{"somethingveryoddindeedthis is", "myothernodedata"},
	}
	reference := NewEmpty(newTestDatabase())
	for _, pair := range pairs {
		updateString(reference, pair[0], pair[1])
	}
	want := reference.Hash()

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 10; round++ {
		shuffled := make([][2]string, len(pairs))
		copy(shuffled, pairs)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		trie := NewEmpty(newTestDatabase())
		for _, pair := range shuffled {
			updateString(trie, pair[0], pair[1])
		}
		if got := trie.Hash(); got != want {
			t.Fatalf("round %d: root mismatch: got %x, want %x\norder: %v\n%s",
				round, got, want, shuffled, spew.Sdump(trie.root))
		}
	}
}

// TestDeleteNormalization checks that deleting keys collapses the trie back
// to the shape it would have if the deleted keys had never been inserted.
func TestDeleteNormalization(t *testing.T) {
	base := [][2]string{
		{"do", "verb"},
		{"dog", "puppy"},
		{"doge", "coin"},
		{"horse", "stallion"},
	}
	extra := [][2]string{
		{"dodge", "caravan"},
		{"dooge", "coupe"},
		{"horsecart", "wood"},
	}
	reference := NewEmpty(newTestDatabase())
	for _, pair := range base {
		updateString(reference, pair[0], pair[1])
	}
	want := reference.Hash()

	trie := NewEmpty(newTestDatabase())
	for _, pair := range base {
		updateString(trie, pair[0], pair[1])
	}
	for _, pair := range extra {
		updateString(trie, pair[0], pair[1])
	}
	for _, pair := range extra {
		deleteString(trie, pair[0])
	}
	if got := trie.Hash(); got != want {
		t.Fatalf("root after deletions %x, want %x", got, want)
	}
	// Branch nodes with a single live child must have collapsed away.
	checkNormalized(t, trie.root)
}

func checkNormalized(t *testing.T, n node) {
	switch n := n.(type) {
	case *shortNode:
		if _, ok := n.Val.(*shortNode); ok {
			t.Fatalf("extension node with extension child: %s", n.fstring(""))
		}
		checkNormalized(t, n.Val)
	case *fullNode:
		live := 0
		for i := 0; i < 17; i++ {
			if n.Children[i] != nil {
				live++
				if i < 16 {
					checkNormalized(t, n.Children[i])
				}
			}
		}
		if live < 2 {
			t.Fatalf("branch node with %d live children: %s", live, n.fstring(""))
		}
	}
}

func TestReplication(t *testing.T) {
	db := newTestDatabase()
	trie := NewEmpty(db)
	vals := []struct{ k, v string }{
		{"do", "verb"},
		{"ether", "wookiedoo"},
		{"horse", "stallion"},
		{"shaman", "horse"},
		{"doge", "coin"},
		{"dog", "puppy"},
		{"somethingveryoddindeedthis is", "myothernodedata"},
	}
	for _, val := range vals {
		updateString(trie, val.k, val.v)
	}
	root, err := trie.Commit()
	if err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if err := db.Commit(); err != nil {
		t.Fatalf("flush error: %v", err)
	}

	// create a new trie on top of the database and check that lookups work.
	trie2, err := New(root, db)
	if err != nil {
		t.Fatalf("can't recreate trie at %x: %v", root, err)
	}
	for _, kv := range vals {
		if string(getString(trie2, kv.k)) != kv.v {
			t.Errorf("trie2 doesn't have %q => %q", kv.k, kv.v)
		}
	}
	hash, err := trie2.Commit()
	if err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if hash != root {
		t.Errorf("root failure. expected %x got %x", root, hash)
	}
}

func TestRandomOps(t *testing.T) {
	// Random updates and deletes against a model map; the trie must agree
	// with the map and with a freshly built trie of the surviving pairs.
	rng := rand.New(rand.NewSource(1337))
	model := make(map[string]string)
	trie := NewEmpty(newTestDatabase())

	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("key-%d", rng.Intn(80))
		if rng.Intn(4) == 0 {
			delete(model, key)
			deleteString(trie, key)
		} else {
			value := fmt.Sprintf("value-%d", i)
			model[key] = value
			updateString(trie, key, value)
		}
	}
	for key, value := range model {
		if got := getString(trie, key); string(got) != value {
			t.Fatalf("key %q: got %q, want %q", key, got, value)
		}
	}
	fresh := NewEmpty(newTestDatabase())
	for key, value := range model {
		updateString(fresh, key, value)
	}
	if trie.Hash() != fresh.Hash() {
		t.Fatalf("root mismatch after random ops: %x != %x", trie.Hash(), fresh.Hash())
	}
}

func TestStateTrie(t *testing.T) {
	db := newTestDatabase()
	trie, _ := NewStateTrie(types.EmptyRootHash, db)
	key := common.HexToAddress("0x0000000000000000000000000000000000000005").Bytes()
	if err := trie.Update(key, []byte("coin")); err != nil {
		t.Fatal(err)
	}
	got, err := trie.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("coin")) {
		t.Fatalf("got %q, want %q", got, "coin")
	}
	// The key must have been hashed: the raw key is not present in the
	// underlying trie.
	if raw := trie.trie.MustGet(key); raw != nil {
		t.Fatalf("raw key unexpectedly present")
	}
}

func updateString(trie *Trie, k, v string) {
	trie.MustUpdate([]byte(k), []byte(v))
}

func getString(trie *Trie, k string) []byte {
	return trie.MustGet([]byte(k))
}

func deleteString(trie *Trie, k string) {
	trie.MustDelete([]byte(k))
}
