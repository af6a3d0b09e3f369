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
	"io"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/rlp"
)

// Log represents a contract log event. These events are generated by the LOG
// opcode and stored/indexed by the node.
type Log struct {
	// Consensus fields:
	// address of the contract that generated the event
	Address common.Address
	// list of topics provided by the contract.
	Topics []common.Hash
	// supplied by the contract, usually ABI-encoded
	Data []byte

	// Derived fields. These fields are filled in by the node
	// but not secured by consensus.
	// block in which the transaction was included
	BlockNumber uint64
	// hash of the transaction
	TxHash common.Hash
	// index of the transaction in the block
	TxIndex uint
	// hash of the block in which the transaction was included
	BlockHash common.Hash
	// index of the log in the block
	Index uint
}

// EncodeRLP implements rlp.Encoder with the consensus encoding
// [address, topics, data].
func (l *Log) EncodeRLP(w io.Writer) error {
	eb := rlp.NewEncoderBuffer(w)
	l.encode(eb)
	return eb.Flush()
}

func (l *Log) encode(w rlp.EncoderBuffer) {
	outer := w.List()
	w.WriteBytes(l.Address[:])
	topics := w.List()
	for _, topic := range l.Topics {
		w.WriteBytes(topic[:])
	}
	w.ListEnd(topics)
	w.WriteBytes(l.Data)
	w.ListEnd(outer)
}

// DecodeRLP implements rlp.Decoder.
func (l *Log) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	addr, err := decodeAddress(s)
	if err != nil {
		return err
	}
	l.Address = addr
	if _, err := s.List(); err != nil {
		return err
	}
	l.Topics = l.Topics[:0]
	for s.MoreDataInList() {
		topic, err := decodeHash(s)
		if err != nil {
			return err
		}
		l.Topics = append(l.Topics, topic)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	if l.Data, err = s.Bytes(); err != nil {
		return err
	}
	return s.ListEnd()
}
