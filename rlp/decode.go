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

//lint:ignore ST1012 EOL is not an error.

// EOL is returned when the end of the current list
// has been reached during streaming.
var EOL = errors.New("rlp: end of list")

var (
	ErrExpectedString   = errors.New("rlp: expected String or Byte")
	ErrExpectedList     = errors.New("rlp: expected List")
	ErrCanonInt         = errors.New("rlp: non-canonical integer format")
	ErrCanonSize        = errors.New("rlp: non-canonical size information")
	ErrElemTooLarge     = errors.New("rlp: element is larger than containing list")
	ErrValueTooLarge    = errors.New("rlp: value size exceeds available input length")
	ErrMoreThanOneValue = errors.New("rlp: input contains more than one value")

	// internal errors
	errNotInList     = errors.New("rlp: call of ListEnd outside of any list")
	errNotAtEOL      = errors.New("rlp: call of ListEnd not positioned at EOL")
	errUintOverflow  = errors.New("rlp: uint overflow")
	errUint256Large  = errors.New("rlp: value too large for uint256")
	errBigIntNil     = errors.New("rlp: cannot decode into nil big.Int")
	errUint256Nil    = errors.New("rlp: cannot decode into nil uint256.Int")
)

// Decoder is implemented by types that require custom RLP decoding rules
// or need to decode into private fields.
//
// The DecodeRLP method should read one value from the given stream. It is
// not forbidden to read less or more, but it might be confusing.
type Decoder interface {
	DecodeRLP(*Stream) error
}

// Kind represents the kind of value contained in an RLP stream.
type Kind int8

const (
	Byte Kind = iota
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// DecodeBytes parses RLP data from b into val. The input must contain exactly
// one value and no trailing data. Please see the documentation of
// Stream.Decode for the decoding rules.
func DecodeBytes(b []byte, val interface{}) error {
	s := newStreamFromBytes(b)
	if err := s.Decode(val); err != nil {
		return err
	}
	if s.pos != uint64(len(b)) {
		return ErrMoreThanOneValue
	}
	return nil
}

// Stream can be used for piecemeal decoding of an input value. This
// is useful if the input is very large or if the decoding rules for a
// type depend on the input structure. Stream holds the whole input in
// memory: NewStream and Reset read r to its end (or up to inputLimit) up
// front. After decoding a value, the input position advances to just
// past the value's encoding.
//
// Stream is not safe for concurrent use.
type Stream struct {
	data []byte
	pos  uint64

	// Information about the value ahead, valid while kindSet holds.
	kindSet bool
	kind    Kind
	size    uint64
	tagsize uint64
	byteval byte // value of single byte in type tag
	kinderr error

	// Absolute end offsets of all open lists, innermost last.
	stack []uint64
}

// NewStream creates a new decoding stream reading from r.
//
// If inputLimit is non-zero, at most inputLimit bytes are read from r.
// The limit guards against the "oversize length" class of malformed
// input: a size prefix larger than the remaining input is rejected with
// ErrValueTooLarge before any allocation happens.
func NewStream(r io.Reader, inputLimit uint64) *Stream {
	s := new(Stream)
	s.Reset(r, inputLimit)
	return s
}

func newStreamFromBytes(b []byte) *Stream {
	s := new(Stream)
	s.data = b
	return s
}

// Reset discards any information about the current decoding context
// and starts reading from r.
func (s *Stream) Reset(r io.Reader, inputLimit uint64) {
	var (
		data []byte
		err  error
	)
	if r != nil {
		if inputLimit > 0 {
			data, err = io.ReadAll(io.LimitReader(r, int64(inputLimit)))
		} else {
			data, err = io.ReadAll(r)
		}
	}
	*s = Stream{data: data}
	if err != nil {
		s.kindSet, s.kinderr = true, err
	}
}

// Decode parses one RLP value from the stream into val.
//
// Supported destinations are *[]byte, *string, *uint64 (and the smaller
// unsigned widths), *big.Int, *uint256.Int, *bool, *RawValue and any type
// implementing Decoder. Other types are a programmer error.
func (s *Stream) Decode(val interface{}) error {
	switch val := val.(type) {
	case *[]byte:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		*val = b
	case *string:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		*val = string(b)
	case *uint64:
		x, err := s.Uint64()
		if err != nil {
			return err
		}
		*val = x
	case *uint32:
		x, err := s.uint(32)
		if err != nil {
			return err
		}
		*val = uint32(x)
	case *uint16:
		x, err := s.uint(16)
		if err != nil {
			return err
		}
		*val = uint16(x)
	case *uint8:
		x, err := s.uint(8)
		if err != nil {
			return err
		}
		*val = uint8(x)
	case *bool:
		x, err := s.Bool()
		if err != nil {
			return err
		}
		*val = x
	case *big.Int:
		return s.decodeBigInt(val)
	case *uint256.Int:
		return s.ReadUint256(val)
	case *RawValue:
		b, err := s.Raw()
		if err != nil {
			return err
		}
		*val = b
	case Decoder:
		return val.DecodeRLP(s)
	default:
		return fmt.Errorf("rlp: type %T is not RLP-decodable", val)
	}
	return nil
}

// Bytes reads an RLP string and returns its contents as a byte slice.
// If the input does not contain an RLP string, the returned
// error will be ErrExpectedString.
func (s *Stream) Bytes() ([]byte, error) {
	kind, size, err := s.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case Byte:
		s.advance(1)
		return []byte{s.byteval}, nil
	case String:
		b := make([]byte, size)
		copy(b, s.data[s.pos+s.tagsize:])
		s.advance(s.tagsize + size)
		return b, nil
	default:
		return nil, ErrExpectedString
	}
}

// Uint64 decodes an integer of at most 64 bits.
func (s *Stream) Uint64() (uint64, error) {
	return s.uint(64)
}

// Bool decodes the canonical boolean encoding, the integers 0 and 1.
func (s *Stream) Bool() (bool, error) {
	num, err := s.uint(8)
	if err != nil {
		return false, err
	}
	switch num {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("rlp: invalid boolean value: %d", num)
	}
}

func (s *Stream) uint(maxbits int) (uint64, error) {
	kind, size, err := s.Kind()
	if err != nil {
		return 0, err
	}
	switch kind {
	case Byte:
		if s.byteval == 0 {
			return 0, ErrCanonInt
		}
		s.advance(1)
		return uint64(s.byteval), nil
	case String:
		if size > uint64(maxbits/8) {
			return 0, errUintOverflow
		}
		if size == 0 {
			s.advance(s.tagsize)
			return 0, nil
		}
		content := s.data[s.pos+s.tagsize : s.pos+s.tagsize+size]
		if content[0] == 0 {
			return 0, ErrCanonInt
		}
		var v uint64
		for _, b := range content {
			v = v<<8 | uint64(b)
		}
		s.advance(s.tagsize + size)
		return v, nil
	default:
		return 0, ErrExpectedString
	}
}

// BigInt decodes an arbitrary-size integer value.
func (s *Stream) BigInt() (*big.Int, error) {
	i := new(big.Int)
	if err := s.decodeBigInt(i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Stream) decodeBigInt(dst *big.Int) error {
	if dst == nil {
		return errBigIntNil
	}
	b, err := s.bigIntBytes()
	if err != nil {
		return err
	}
	dst.SetBytes(b)
	return nil
}

// ReadUint256 decodes the next value as a uint256.
func (s *Stream) ReadUint256(dst *uint256.Int) error {
	if dst == nil {
		return errUint256Nil
	}
	b, err := s.bigIntBytes()
	if err != nil {
		return err
	}
	if len(b) > 32 {
		return errUint256Large
	}
	dst.SetBytes(b)
	return nil
}

// bigIntBytes reads the big-endian content of an integer value, applying
// the canonical-integer rules: no leading zero byte, and values below 128
// must use the single-byte form.
func (s *Stream) bigIntBytes() ([]byte, error) {
	kind, size, err := s.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case Byte:
		if s.byteval == 0 {
			return nil, ErrCanonInt
		}
		s.advance(1)
		return []byte{s.byteval}, nil
	case String:
		content := s.data[s.pos+s.tagsize : s.pos+s.tagsize+size]
		if size > 0 && content[0] == 0 {
			return nil, ErrCanonInt
		}
		b := make([]byte, size)
		copy(b, content)
		s.advance(s.tagsize + size)
		return b, nil
	default:
		return nil, ErrExpectedString
	}
}

// List starts decoding an RLP list. If the input does not contain a list,
// the returned error will be ErrExpectedList. When the list's end has been
// reached, any Stream operation will return EOL.
func (s *Stream) List() (size uint64, err error) {
	kind, size, err := s.Kind()
	if err != nil {
		return 0, err
	}
	if kind != List {
		return 0, ErrExpectedList
	}
	s.stack = append(s.stack, s.pos+s.tagsize+size)
	s.pos += s.tagsize
	s.kindSet = false
	return size, nil
}

// ListEnd returns to the enclosing list. The input must be positioned at the
// end of a list.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return errNotInList
	}
	if s.pos != s.stack[len(s.stack)-1] {
		return errNotAtEOL
	}
	s.stack = s.stack[:len(s.stack)-1]
	s.kindSet = false
	return nil
}

// MoreDataInList reports whether the current list context contains
// more data to be read.
func (s *Stream) MoreDataInList() bool {
	return s.pos < s.listLimit()
}

// Raw reads a raw encoded value including RLP type information.
func (s *Stream) Raw() ([]byte, error) {
	kind, size, err := s.Kind()
	if err != nil {
		return nil, err
	}
	if kind == Byte {
		s.advance(1)
		return []byte{s.byteval}, nil
	}
	total := s.tagsize + size
	buf := make([]byte, total)
	copy(buf, s.data[s.pos:])
	s.advance(total)
	return buf, nil
}

// Kind returns the kind and size of the next value in the
// input stream.
//
// The returned size is the number of bytes that make up the value.
// For kind == Byte, the size is zero because the value is
// contained in the type tag.
//
// The first call to Kind reads the size information of the next value;
// the input position stays at the value's type tag. Subsequent calls to
// Kind (until the value is decoded) return the cached information.
func (s *Stream) Kind() (kind Kind, size uint64, err error) {
	if s.kindSet {
		return s.kind, s.size, s.kinderr
	}
	s.kindSet = true
	s.kind, s.tagsize, s.size, s.kinderr = s.readKind()
	return s.kind, s.size, s.kinderr
}

func (s *Stream) readKind() (kind Kind, tagsize, size uint64, err error) {
	limit := s.listLimit()
	if s.pos == limit {
		if len(s.stack) > 0 {
			return 0, 0, 0, EOL
		}
		return 0, 0, 0, io.EOF
	}
	b := s.data[s.pos]
	switch {
	case b < 0x80:
		kind, tagsize, size = Byte, 0, 0
		s.byteval = b
		return kind, tagsize, size, nil
	case b < 0xB8:
		kind, tagsize, size = String, 1, uint64(b-0x80)
		// Reject strings that should've been single bytes.
		if size == 1 && s.pos+1 < uint64(len(s.data)) && s.data[s.pos+1] < 128 {
			return 0, 0, 0, ErrCanonSize
		}
	case b < 0xC0:
		kind, tagsize = String, uint64(b-0xB7)+1
		size, err = readSize(s.data[s.pos+1:min(limit, uint64(len(s.data)))], b-0xB7)
	case b < 0xF8:
		kind, tagsize, size = List, 1, uint64(b-0xC0)
	default:
		kind, tagsize = List, uint64(b-0xF7)+1
		size, err = readSize(s.data[s.pos+1:min(limit, uint64(len(s.data)))], b-0xF7)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	// Check that the value fits the enclosing context. Overflowing the
	// innermost list is ErrElemTooLarge, overflowing the input itself
	// is ErrValueTooLarge. The comparison is arranged so that huge size
	// prefixes cannot wrap around uint64.
	avail := limit - s.pos
	if tagsize > avail || size > avail-tagsize {
		if limit < uint64(len(s.data)) {
			return 0, 0, 0, ErrElemTooLarge
		}
		return 0, 0, 0, ErrValueTooLarge
	}
	return kind, tagsize, size, nil
}

// listLimit returns the offset the current value may not read past.
func (s *Stream) listLimit() uint64 {
	if len(s.stack) == 0 {
		return uint64(len(s.data))
	}
	return s.stack[len(s.stack)-1]
}

func (s *Stream) advance(n uint64) {
	s.pos += n
	s.kindSet = false
}
