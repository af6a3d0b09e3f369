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

package rawdb

import (
	"bytes"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb"
	"github.com/emberlabs/ember/log"
	"github.com/emberlabs/ember/rlp"
)

// ReadCanonicalHash retrieves the hash assigned to a canonical block number.
func ReadCanonicalHash(db ethdb.KeyValueReader, number uint64) common.Hash {
	data, _ := db.Get(headerHashKey(number))
	if len(data) == 0 {
		return common.Hash{}
	}
	return common.BytesToHash(data)
}

// WriteCanonicalHash stores the hash assigned to a canonical block number.
func WriteCanonicalHash(db ethdb.KeyValueWriter, hash common.Hash, number uint64) {
	if err := db.Put(headerHashKey(number), hash.Bytes()); err != nil {
		log.Crit("Failed to store number to hash mapping", "err", err)
	}
}

// ReadHeadBlockHash retrieves the head block's hash.
func ReadHeadBlockHash(db ethdb.KeyValueReader) common.Hash {
	data, _ := db.Get(headBlockKey)
	if len(data) == 0 {
		return common.Hash{}
	}
	return common.BytesToHash(data)
}

// WriteHeadBlockHash stores the head block's hash.
func WriteHeadBlockHash(db ethdb.KeyValueWriter, hash common.Hash) {
	if err := db.Put(headBlockKey, hash.Bytes()); err != nil {
		log.Crit("Failed to store last block's hash", "err", err)
	}
}

// ReadHeader retrieves the block header corresponding to the hash.
func ReadHeader(db ethdb.KeyValueReader, hash common.Hash) *types.Header {
	data, _ := db.Get(headerKey(hash))
	if len(data) == 0 {
		return nil
	}
	header := new(types.Header)
	if err := rlp.DecodeBytes(data, header); err != nil {
		log.Error("Invalid block header RLP", "hash", hash, "err", err)
		return nil
	}
	return header
}

// WriteHeader stores a block header into the database.
func WriteHeader(db ethdb.KeyValueWriter, header *types.Header) {
	var buf bytes.Buffer
	if err := header.EncodeRLP(&buf); err != nil {
		log.Crit("Failed to RLP encode header", "err", err)
	}
	if err := db.Put(headerKey(header.Hash()), buf.Bytes()); err != nil {
		log.Crit("Failed to store header", "err", err)
	}
}

// ReadBody retrieves the block body corresponding to the hash.
func ReadBody(db ethdb.KeyValueReader, hash common.Hash) *types.Body {
	data, _ := db.Get(blockBodyKey(hash))
	if len(data) == 0 {
		return nil
	}
	body := new(types.Body)
	if err := decodeBody(data, body); err != nil {
		log.Error("Invalid block body RLP", "hash", hash, "err", err)
		return nil
	}
	return body
}

// WriteBody stores a block body into the database.
func WriteBody(db ethdb.KeyValueWriter, hash common.Hash, body *types.Body) {
	data, err := encodeBody(body)
	if err != nil {
		log.Crit("Failed to RLP encode body", "err", err)
	}
	if err := db.Put(blockBodyKey(hash), data); err != nil {
		log.Crit("Failed to store block body", "err", err)
	}
}

// ReadBlock retrieves an entire block corresponding to the hash, assembling
// it back from the stored header and body.
func ReadBlock(db ethdb.KeyValueReader, hash common.Hash) *types.Block {
	header := ReadHeader(db, hash)
	if header == nil {
		return nil
	}
	body := ReadBody(db, hash)
	if body == nil {
		return nil
	}
	return types.NewBlockWithHeader(header).WithBody(*body)
}

// WriteBlock serializes a block into the database, header and body separately.
func WriteBlock(db ethdb.KeyValueWriter, block *types.Block) {
	WriteBody(db, block.Hash(), block.Body())
	WriteHeader(db, block.Header())
}

// ReadCode retrieves the contract code of the provided code hash.
func ReadCode(db ethdb.KeyValueReader, hash common.Hash) []byte {
	data, _ := db.Get(codeKey(hash))
	return data
}

// HasCode checks if the contract code corresponding to the
// provided code hash is present in the db.
func HasCode(db ethdb.KeyValueReader, hash common.Hash) bool {
	ok, _ := db.Has(codeKey(hash))
	return ok
}

// WriteCode writes the provided contract code database.
func WriteCode(db ethdb.KeyValueWriter, hash common.Hash, code []byte) {
	if err := db.Put(codeKey(hash), code); err != nil {
		log.Crit("Failed to store contract code", "err", err)
	}
}

// encodeBody RLP encodes a block body as [txs, uncles].
func encodeBody(body *types.Body) ([]byte, error) {
	eb := rlp.NewEncoderBuffer(nil)
	outer := eb.List()
	txs := eb.List()
	for _, tx := range body.Transactions {
		if err := tx.EncodeRLP(eb); err != nil {
			return nil, err
		}
	}
	eb.ListEnd(txs)
	if err := types.Headers(body.Uncles).EncodeRLP(eb); err != nil {
		return nil, err
	}
	eb.ListEnd(outer)
	data := eb.ToBytes()
	eb.Flush()
	return data, nil
}

// decodeBody decodes a block body from the [txs, uncles] form.
func decodeBody(data []byte, body *types.Body) error {
	s := rlp.NewStream(bytes.NewReader(data), uint64(len(data)))
	if _, err := s.List(); err != nil {
		return err
	}
	if _, err := s.List(); err != nil {
		return err
	}
	for s.MoreDataInList() {
		tx := new(types.Transaction)
		if err := tx.DecodeRLP(s); err != nil {
			return err
		}
		body.Transactions = append(body.Transactions, tx)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	if _, err := s.List(); err != nil {
		return err
	}
	for s.MoreDataInList() {
		uncle := new(types.Header)
		if err := uncle.DecodeRLP(s); err != nil {
			return err
		}
		body.Uncles = append(body.Uncles, uncle)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	return s.ListEnd()
}
