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

package rlp

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// Common encoded values.
	// These are useful when implementing EncodeRLP.

	// EmptyString is the encoding of an empty string.
	EmptyString = []byte{0x80}
	// EmptyList is the encoding of an empty list.
	EmptyList = []byte{0xC0}

	// ErrNegativeBigInt is returned when attempting to encode a negative
	// integer. RLP has no notion of signedness.
	ErrNegativeBigInt = errors.New("rlp: cannot encode negative big.Int")
)

// Encoder is implemented by types that require custom
// encoding rules or want to encode private fields.
type Encoder interface {
	// EncodeRLP should write the RLP encoding of its receiver to w.
	// If the implementation is a pointer method, it may also be
	// called for nil pointers.
	//
	// Implementations should generate valid RLP. The data written is
	// not verified at the moment, but a future version might. It is
	// recommended to write only a single value but writing more than
	// one value or no value at all is also permitted.
	EncodeRLP(io.Writer) error
}

// Encode writes the RLP encoding of val to w.
//
// Unlike the full reflection-driven codec found in other clients, this
// implementation supports a fixed set of value types: []byte, string,
// uint64 (and smaller unsigned integers), *big.Int, *uint256.Int, bool,
// and any type implementing Encoder. Everything else is a programmer
// error and is reported as such.
func Encode(w io.Writer, val interface{}) error {
	// Optimization: reuse the outer buffer if w is already an encoder buffer.
	if buf := encBufferFromWriter(w); buf != nil {
		return encode(buf, val)
	}
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)
	if err := encode(buf, val); err != nil {
		return err
	}
	return buf.writeTo(w)
}

// EncodeToBytes returns the RLP encoding of val.
// Please see the documentation of Encode for the encoding rules.
func EncodeToBytes(val interface{}) ([]byte, error) {
	buf := getEncBuffer()
	defer encBufferPool.Put(buf)

	if err := encode(buf, val); err != nil {
		return nil, err
	}
	return buf.makeBytes(), nil
}

func encode(buf *encBuffer, val interface{}) error {
	switch val := val.(type) {
	case []byte:
		buf.writeBytes(val)
	case string:
		buf.writeBytes([]byte(val))
	case uint:
		buf.writeUint64(uint64(val))
	case uint8:
		buf.writeUint64(uint64(val))
	case uint16:
		buf.writeUint64(uint64(val))
	case uint32:
		buf.writeUint64(uint64(val))
	case uint64:
		buf.writeUint64(val)
	case bool:
		buf.writeBool(val)
	case *big.Int:
		if val.Sign() < 0 {
			return ErrNegativeBigInt
		}
		buf.writeBigInt(val)
	case *uint256.Int:
		buf.writeUint256(val)
	case Encoder:
		return val.EncodeRLP(buf)
	default:
		return fmt.Errorf("rlp: type %T is not RLP-serializable", val)
	}
	return nil
}

// wordBytes is the number of bytes in a big.Word.
const wordBytes = (32 << (uint64(^big.Word(0)) >> 63)) / 8

// listhead is a pending list header in the encoder buffer. The size of the
// header itself depends on the size of the content, which is only known when
// the list is closed, so headers are spliced into the output at the end.
type listhead struct {
	offset int // index of this header in string data
	size   int // total size of encoded data (including list headers)
}

// encode writes head to the given buffer, which must be at least
// 9 bytes long. It returns the encoded bytes.
func (head *listhead) encode(buf []byte) []byte {
	return buf[:puthead(buf, 0xC0, 0xF7, uint64(head.size))]
}

// headsize returns the size of a list or string header
// for a value of the given size.
func headsize(size uint64) int {
	if size < 56 {
		return 1
	}
	return 1 + intsize(size)
}

// puthead writes a list or string header to buf.
// buf must be at least 9 bytes long.
func puthead(buf []byte, smalltag, largetag byte, size uint64) int {
	if size < 56 {
		buf[0] = smalltag + byte(size)
		return 1
	}
	sizesize := putint(buf[1:], size)
	buf[0] = largetag + byte(sizesize)
	return sizesize + 1
}

// putint writes i to the beginning of b in big endian byte
// order, using the least number of bytes needed to represent i.
func putint(b []byte, i uint64) (size int) {
	switch {
	case i < (1 << 8):
		b[0] = byte(i)
		return 1
	case i < (1 << 16):
		b[0] = byte(i >> 8)
		b[1] = byte(i)
		return 2
	case i < (1 << 24):
		b[0] = byte(i >> 16)
		b[1] = byte(i >> 8)
		b[2] = byte(i)
		return 3
	case i < (1 << 32):
		b[0] = byte(i >> 24)
		b[1] = byte(i >> 16)
		b[2] = byte(i >> 8)
		b[3] = byte(i)
		return 4
	case i < (1 << 40):
		b[0] = byte(i >> 32)
		b[1] = byte(i >> 24)
		b[2] = byte(i >> 16)
		b[3] = byte(i >> 8)
		b[4] = byte(i)
		return 5
	case i < (1 << 48):
		b[0] = byte(i >> 40)
		b[1] = byte(i >> 32)
		b[2] = byte(i >> 24)
		b[3] = byte(i >> 16)
		b[4] = byte(i >> 8)
		b[5] = byte(i)
		return 6
	case i < (1 << 56):
		b[0] = byte(i >> 48)
		b[1] = byte(i >> 40)
		b[2] = byte(i >> 32)
		b[3] = byte(i >> 24)
		b[4] = byte(i >> 16)
		b[5] = byte(i >> 8)
		b[6] = byte(i)
		return 7
	default:
		b[0] = byte(i >> 56)
		b[1] = byte(i >> 48)
		b[2] = byte(i >> 40)
		b[3] = byte(i >> 32)
		b[4] = byte(i >> 24)
		b[5] = byte(i >> 16)
		b[6] = byte(i >> 8)
		b[7] = byte(i)
		return 8
	}
}

// intsize computes the minimum number of bytes required to store i.
func intsize(i uint64) (size int) {
	for size = 1; ; size++ {
		if i >>= 8; i == 0 {
			return size
		}
	}
}
