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

// Package types contains data types related to consensus.
package types

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/rlp"
)

// A BlockNonce is a 64-bit hash which proves (combined with the
// mix-hash) that a sufficient amount of computation has been carried
// out on a block.
type BlockNonce [8]byte

// EncodeNonce converts the given integer to a block nonce.
func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	binary.BigEndian.PutUint64(n[:], i)
	return n
}

// Uint64 returns the integer value of a block nonce.
func (n BlockNonce) Uint64() uint64 {
	return binary.BigEndian.Uint64(n[:])
}

// Header represents a block header in the blockchain. The fifteen fields
// below appear in this exact order in the consensus encoding; the block
// hash is the Keccak-256 hash of that encoding.
type Header struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   common.Hash
	Nonce       BlockNonce
}

// Hash returns the block hash of the header, which is simply the keccak256
// hash of its RLP encoding.
func (h *Header) Hash() common.Hash {
	return rlpHash(h)
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	h.encode(eb)
	return eb.Flush()
}

func (h *Header) encode(w rlp.EncoderBuffer) {
	list := w.List()
	w.WriteBytes(h.ParentHash[:])
	w.WriteBytes(h.UncleHash[:])
	w.WriteBytes(h.Coinbase[:])
	w.WriteBytes(h.Root[:])
	w.WriteBytes(h.TxHash[:])
	w.WriteBytes(h.ReceiptHash[:])
	w.WriteBytes(h.Bloom[:])
	w.WriteBigInt(h.Difficulty)
	w.WriteBigInt(h.Number)
	w.WriteUint64(h.GasLimit)
	w.WriteUint64(h.GasUsed)
	w.WriteUint64(h.Time)
	w.WriteBytes(h.Extra)
	w.WriteBytes(h.MixDigest[:])
	w.WriteBytes(h.Nonce[:])
	w.ListEnd(list)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var err error
	if h.ParentHash, err = decodeHash(s); err != nil {
		return err
	}
	if h.UncleHash, err = decodeHash(s); err != nil {
		return err
	}
	if h.Coinbase, err = decodeAddress(s); err != nil {
		return err
	}
	if h.Root, err = decodeHash(s); err != nil {
		return err
	}
	if h.TxHash, err = decodeHash(s); err != nil {
		return err
	}
	if h.ReceiptHash, err = decodeHash(s); err != nil {
		return err
	}
	bloom, err := s.Bytes()
	if err != nil {
		return err
	}
	if len(bloom) != BloomByteLength {
		return fmt.Errorf("invalid bloom length %d", len(bloom))
	}
	h.Bloom = BytesToBloom(bloom)
	if h.Difficulty, err = s.BigInt(); err != nil {
		return err
	}
	if h.Number, err = s.BigInt(); err != nil {
		return err
	}
	if err := s.Decode(&h.GasLimit); err != nil {
		return err
	}
	if err := s.Decode(&h.GasUsed); err != nil {
		return err
	}
	if err := s.Decode(&h.Time); err != nil {
		return err
	}
	if h.Extra, err = s.Bytes(); err != nil {
		return err
	}
	if h.MixDigest, err = decodeHash(s); err != nil {
		return err
	}
	nonce, err := s.Bytes()
	if err != nil {
		return err
	}
	if len(nonce) != 8 {
		return fmt.Errorf("invalid nonce length %d", len(nonce))
	}
	copy(h.Nonce[:], nonce)
	return s.ListEnd()
}

// CopyHeader creates a deep copy of a block header.
func CopyHeader(h *Header) *Header {
	cpy := *h
	if cpy.Difficulty = new(big.Int); h.Difficulty != nil {
		cpy.Difficulty.Set(h.Difficulty)
	}
	if cpy.Number = new(big.Int); h.Number != nil {
		cpy.Number.Set(h.Number)
	}
	if len(h.Extra) > 0 {
		cpy.Extra = make([]byte, len(h.Extra))
		copy(cpy.Extra, h.Extra)
	}
	return &cpy
}

// Headers is a slice of headers, used to encode the ommer list.
type Headers []*Header

// EncodeRLP implements rlp.Encoder.
func (hs Headers) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	list := eb.List()
	for _, h := range hs {
		h.encode(eb)
	}
	eb.ListEnd(list)
	return eb.Flush()
}

// Body is a simple (mutable, non-safe) data container for storing and moving
// a block's data contents (transactions and uncles) together.
type Body struct {
	Transactions []*Transaction
	Uncles       []*Header
}

// Block represents an entire block in the blockchain: a header plus the
// ordered transaction list plus the ordered ommer header list.
type Block struct {
	header       *Header
	uncles       []*Header
	transactions Transactions

	// caches
	hash atomic.Value
}

// NewBlock creates a new block. The input data is copied, changes to header
// and to the field values will not affect the block.
//
// The values of TxHash, UncleHash, ReceiptHash and Bloom in header are
// ignored and set to values derived from the given txs, uncles and receipts.
// With no receipts, the Bloom of the given header is kept.
func NewBlock(header *Header, txs []*Transaction, uncles []*Header, receipts []*Receipt, hasher TrieHasher) *Block {
	b := &Block{header: CopyHeader(header)}

	if len(txs) == 0 {
		b.header.TxHash = EmptyTxsHash
	} else {
		b.header.TxHash = DeriveSha(Transactions(txs), hasher)
		b.transactions = make(Transactions, len(txs))
		copy(b.transactions, txs)
	}

	if len(receipts) == 0 {
		b.header.ReceiptHash = EmptyReceiptsHash
	} else {
		b.header.ReceiptHash = DeriveSha(Receipts(receipts), hasher)
		b.header.Bloom = CreateBloom(receipts)
	}

	if len(uncles) == 0 {
		b.header.UncleHash = EmptyUncleHash
	} else {
		b.header.UncleHash = CalcUncleHash(uncles)
		b.uncles = make([]*Header, len(uncles))
		for i := range uncles {
			b.uncles[i] = CopyHeader(uncles[i])
		}
	}
	return b
}

// NewBlockWithHeader creates a block with the given header data. The
// header data is copied, changes to header and to the field values
// will not affect the block.
func NewBlockWithHeader(header *Header) *Block {
	return &Block{header: CopyHeader(header)}
}

// WithBody returns a copy of the block with the given transaction and uncle
// contents, leaving the header untouched.
func (b *Block) WithBody(body Body) *Block {
	block := &Block{
		header:       b.header,
		transactions: sliceCopy(body.Transactions),
		uncles:       make([]*Header, len(body.Uncles)),
	}
	for i := range body.Uncles {
		block.uncles[i] = CopyHeader(body.Uncles[i])
	}
	return block
}

func sliceCopy(txs []*Transaction) []*Transaction {
	cpy := make([]*Transaction, len(txs))
	copy(cpy, txs)
	return cpy
}

// CalcUncleHash computes the hash of the consensus encoding of the given
// ommer header list.
func CalcUncleHash(uncles []*Header) common.Hash {
	if len(uncles) == 0 {
		return EmptyUncleHash
	}
	return rlpHash(Headers(uncles))
}

// Body returns the non-header content of the block.
func (b *Block) Body() *Body { return &Body{b.transactions, b.uncles} }

// Accessors for body data. These do not return a copy because the content
// of the body slices does not affect the cached hash of the block.

func (b *Block) Uncles() []*Header          { return b.uncles }
func (b *Block) Transactions() Transactions { return b.transactions }

// Transaction returns the transaction with the given hash, if present.
func (b *Block) Transaction(hash common.Hash) *Transaction {
	for _, transaction := range b.transactions {
		if transaction.Hash() == hash {
			return transaction
		}
	}
	return nil
}

// Header returns a deep copy of the block header.
func (b *Block) Header() *Header { return CopyHeader(b.header) }

// Header value accessors. These do copy!

func (b *Block) Number() *big.Int     { return new(big.Int).Set(b.header.Number) }
func (b *Block) GasLimit() uint64     { return b.header.GasLimit }
func (b *Block) GasUsed() uint64      { return b.header.GasUsed }
func (b *Block) Difficulty() *big.Int { return new(big.Int).Set(b.header.Difficulty) }
func (b *Block) Time() uint64         { return b.header.Time }

func (b *Block) NumberU64() uint64        { return b.header.Number.Uint64() }
func (b *Block) MixDigest() common.Hash   { return b.header.MixDigest }
func (b *Block) Nonce() uint64            { return b.header.Nonce.Uint64() }
func (b *Block) Bloom() Bloom             { return b.header.Bloom }
func (b *Block) Coinbase() common.Address { return b.header.Coinbase }
func (b *Block) Root() common.Hash        { return b.header.Root }
func (b *Block) ParentHash() common.Hash  { return b.header.ParentHash }
func (b *Block) TxHash() common.Hash      { return b.header.TxHash }
func (b *Block) ReceiptHash() common.Hash { return b.header.ReceiptHash }
func (b *Block) UncleHash() common.Hash   { return b.header.UncleHash }
func (b *Block) Extra() []byte            { return common.CopyBytes(b.header.Extra) }

// Hash returns the keccak256 hash of b's header.
// The hash is computed on the first call and cached thereafter.
func (b *Block) Hash() common.Hash {
	if hash := b.hash.Load(); hash != nil {
		return hash.(common.Hash)
	}
	h := b.header.Hash()
	b.hash.Store(h)
	return h
}

// EncodeRLP serializes a block as [header, txs, uncles].
func (b *Block) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	outer := eb.List()
	b.header.encode(eb)
	txs := eb.List()
	for _, tx := range b.transactions {
		tx.encode(eb)
	}
	eb.ListEnd(txs)
	uncles := eb.List()
	for _, uncle := range b.uncles {
		uncle.encode(eb)
	}
	eb.ListEnd(uncles)
	eb.ListEnd(outer)
	return eb.Flush()
}

// DecodeRLP decodes a block from the canonical [header, txs, uncles] form.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	b.header = new(Header)
	if err := b.header.DecodeRLP(s); err != nil {
		return err
	}
	if _, err := s.List(); err != nil {
		return err
	}
	b.transactions = b.transactions[:0]
	for s.MoreDataInList() {
		tx := new(Transaction)
		if err := tx.DecodeRLP(s); err != nil {
			return err
		}
		b.transactions = append(b.transactions, tx)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	if _, err := s.List(); err != nil {
		return err
	}
	b.uncles = b.uncles[:0]
	for s.MoreDataInList() {
		uncle := new(Header)
		if err := uncle.DecodeRLP(s); err != nil {
			return err
		}
		b.uncles = append(b.uncles, uncle)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	return s.ListEnd()
}

// errShortField is returned when a fixed-size field decodes to the wrong length.
var errShortField = errors.New("rlp: wrong length for fixed-size field")

func decodeHash(s *rlp.Stream) (common.Hash, error) {
	b, err := s.Bytes()
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, errShortField
	}
	return common.BytesToHash(b), nil
}

func decodeAddress(s *rlp.Stream) (common.Address, error) {
	b, err := s.Bytes()
	if err != nil {
		return common.Address{}, err
	}
	if len(b) != common.AddressLength {
		return common.Address{}, errShortField
	}
	return common.BytesToAddress(b), nil
}
