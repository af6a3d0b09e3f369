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
	"fmt"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/triedb"
)

// committer translates nodes from dirty to clean, collapsing them and
// writing every node whose encoding reaches 32 bytes into the node
// database. Smaller nodes embed in their parent and are not stored.
type committer struct {
	db *triedb.Database
}

func newCommitter(db *triedb.Database) *committer {
	return &committer{db: db}
}

// Commit collapses a node down into a hash node and stores it, along with
// every dirty descendant.
func (c *committer) Commit(n node) node {
	return c.commit(nil, n)
}

// commit collapses a node down into a hash node and returns it.
func (c *committer) commit(path []byte, n node) node {
	// if this path is clean, use available cached data
	hash, dirty := n.cache()
	if hash != nil && !dirty {
		return hashNode(hash)
	}
	// Commit children, then parent, and remove the dirty flag.
	switch cn := n.(type) {
	case *shortNode:
		// Commit child
		collapsed := cn.copy()

		// If the child is fullNode, recursively commit,
		// otherwise it can only be hashNode or valueNode.
		if _, ok := cn.Val.(*fullNode); ok {
			collapsed.Val = c.commit(append(path, cn.Key...), cn.Val)
		}
		// The key is converted to compact form for storage.
		collapsed.Key = hexToCompact(cn.Key)
		hashedNode := c.store(path, collapsed)
		if hn, ok := hashedNode.(hashNode); ok {
			return hn
		}
		return collapsed
	case *fullNode:
		hashedKids := c.commitChildren(path, cn)
		collapsed := cn.copy()
		collapsed.Children = hashedKids

		hashedNode := c.store(path, collapsed)
		if hn, ok := hashedNode.(hashNode); ok {
			return hn
		}
		return collapsed
	case hashNode:
		return cn
	default:
		// nil, valuenode shouldn't be committed
		panic(fmt.Sprintf("%T: invalid node: %v", n, n))
	}
}

// commitChildren commits the children of the given fullnode
func (c *committer) commitChildren(path []byte, n *fullNode) [17]node {
	var children [17]node
	for i := 0; i < 16; i++ {
		child := n.Children[i]
		if child == nil {
			continue
		}
		// If it's the hashed child, save the hash value directly.
		// Note: it's impossible that the child in range [0, 15]
		// is a valueNode.
		if hn, ok := child.(hashNode); ok {
			children[i] = hn
			continue
		}
		// Commit the child recursively and store the "hashed" value.
		// Note the returned node can be some embedded nodes, so it's
		// possible the type is not hashNode.
		children[i] = c.commit(append(path, byte(i)), child)
	}
	// For the 17th child, it's possible the type is valuenode.
	if n.Children[16] != nil {
		children[16] = n.Children[16]
	}
	return children
}

// store encodes the node n and adds it to the node database if its encoding
// reaches 32 bytes. Smaller nodes are returned as-is to be embedded in their
// parent — except the root, whose hash was forced during hashing and which
// is therefore always stored so the trie stays resolvable by its root hash.
func (c *committer) store(path []byte, n node) node {
	hash, _ := n.cache()
	enc := nodeToBytes(n)
	if hash == nil && len(enc) < 32 {
		return n
	}
	if hash == nil {
		hash = hashNode(crypto.Keccak256(enc))
	}
	c.db.Insert(common.BytesToHash(hash), enc)
	return hashNode(hash)
}
