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

package types

import (
	"bytes"
	"io"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/rlp"
)

// Receipt represents the results of a transaction. The consensus encoding
// is the RLP list [postState, cumulativeGasUsed, bloom, logs], carrying the
// intermediate state root taken after the transaction was applied.
type Receipt struct {
	// Consensus fields
	PostState         []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*Log

	// Implementation fields: These fields are added by ember when
	// processing a transaction. They are stored in the chain database.
	TxHash          common.Hash
	ContractAddress common.Address
	GasUsed         uint64
}

// NewReceipt creates a barebone transaction receipt, copying the init fields.
func NewReceipt(root []byte, cumulativeGasUsed uint64) *Receipt {
	return &Receipt{
		PostState:         common.CopyBytes(root),
		CumulativeGasUsed: cumulativeGasUsed,
	}
}

// EncodeRLP implements rlp.Encoder.
func (r *Receipt) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	r.encode(eb)
	return eb.Flush()
}

func (r *Receipt) encode(w rlp.EncoderBuffer) {
	outer := w.List()
	w.WriteBytes(r.PostState)
	w.WriteUint64(r.CumulativeGasUsed)
	w.WriteBytes(r.Bloom[:])
	logs := w.List()
	for _, log := range r.Logs {
		log.encode(w)
	}
	w.ListEnd(logs)
	w.ListEnd(outer)
}

// DecodeRLP implements rlp.Decoder.
func (r *Receipt) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var err error
	if r.PostState, err = s.Bytes(); err != nil {
		return err
	}
	if err := s.Decode(&r.CumulativeGasUsed); err != nil {
		return err
	}
	bloom, err := s.Bytes()
	if err != nil {
		return err
	}
	if len(bloom) != BloomByteLength {
		return errShortField
	}
	r.Bloom = BytesToBloom(bloom)
	if _, err := s.List(); err != nil {
		return err
	}
	r.Logs = r.Logs[:0]
	for s.MoreDataInList() {
		log := new(Log)
		if err := log.DecodeRLP(s); err != nil {
			return err
		}
		r.Logs = append(r.Logs, log)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	return s.ListEnd()
}

// Receipts implements DerivableList for the receipts trie.
type Receipts []*Receipt

// Len returns the number of receipts in this list.
func (rs Receipts) Len() int { return len(rs) }

// EncodeIndex encodes the i'th receipt to w.
func (rs Receipts) EncodeIndex(i int, w *bytes.Buffer) {
	rs[i].EncodeRLP(w)
}
