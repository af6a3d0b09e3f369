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

// Package rawdb contains a collection of low level database accessors.
package rawdb

import (
	"encoding/binary"

	"github.com/emberlabs/ember/common"
)

// The fields below define the low level database schema prefixing.
var (
	// headBlockKey tracks the latest known full block's hash.
	headBlockKey = []byte("LastBlock")

	headerPrefix     = []byte("h") // headerPrefix + hash -> header
	blockBodyPrefix  = []byte("b") // blockBodyPrefix + hash -> block body
	headerHashPrefix = []byte("n") // headerHashPrefix + num (uint64 big endian) -> canonical hash
	codePrefix       = []byte("c") // codePrefix + code hash -> contract code
)

// encodeBlockNumber encodes a block number as big endian uint64
func encodeBlockNumber(number uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, number)
	return enc
}

// headerKey = headerPrefix + hash
func headerKey(hash common.Hash) []byte {
	return append(headerPrefix, hash.Bytes()...)
}

// blockBodyKey = blockBodyPrefix + hash
func blockBodyKey(hash common.Hash) []byte {
	return append(blockBodyPrefix, hash.Bytes()...)
}

// headerHashKey = headerHashPrefix + num (uint64 big endian)
func headerHashKey(number uint64) []byte {
	return append(headerHashPrefix, encodeBlockNumber(number)...)
}

// codeKey = codePrefix + hash
func codeKey(hash common.Hash) []byte {
	return append(codePrefix, hash.Bytes()...)
}
