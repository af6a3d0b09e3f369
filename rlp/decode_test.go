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
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestStreamKind(t *testing.T) {
	tests := []struct {
		input    string
		wantKind Kind
		wantLen  uint64
	}{
		{"00", Byte, 0},
		{"01", Byte, 0},
		{"7F", Byte, 0},
		{"80", String, 0},
		{"B7", String, 55},
		{"B90400", String, 1024},
		{"C0", List, 0},
		{"C8", List, 8},
		{"F7", List, 55},
		{"F90400", List, 1024},
	}
	for i, test := range tests {
		// Pad the input with the declared payload so size checks pass.
		input := unhexLower(test.input)
		padded := append(input, make([]byte, test.wantLen)...)
		s := newStreamFromBytes(padded)
		kind, size, err := s.Kind()
		if err != nil {
			t.Errorf("test %d: Kind returns error: %v", i, err)
			continue
		}
		if kind != test.wantKind {
			t.Errorf("test %d: kind mismatch: got %d, want %d", i, kind, test.wantKind)
		}
		if size != test.wantLen {
			t.Errorf("test %d: size mismatch: got %d, want %d", i, size, test.wantLen)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		input string
		val   interface{}
		err   error
	}{
		// non-canonical single byte string
		{"8100", new([]byte), ErrCanonSize},
		{"817F", new([]byte), ErrCanonSize},
		// canonical single byte
		{"8180", new([]byte), nil},
		// long form used for short payload
		{"B800", new([]byte), ErrCanonSize},
		{"B90000", new([]byte), ErrCanonSize},
		// leading zero in length of length
		{"B90055", new([]byte), ErrCanonSize},
		{"BA0002FFFF", new([]byte), ErrCanonSize},
		// truncated values
		{"81", new([]byte), ErrValueTooLarge},
		{"B8", new([]byte), io.ErrUnexpectedEOF},
		{"B860", new([]byte), ErrValueTooLarge},
		{"C1", new([]byte), ErrValueTooLarge},
		// size larger than the whole input
		{"B9FFFF", new([]byte), ErrValueTooLarge},
		{"BFFFFFFFFFFFFFFFFFFF", new([]byte), ErrValueTooLarge},
		// non-canonical integers
		{"00", new(uint64), ErrCanonInt},
		{"8105", new(uint64), ErrCanonSize},
		{"820004", new(uint64), ErrCanonInt},
		{"8200F4", new(uint64), ErrCanonInt},
		// expected kinds
		{"C0", new([]byte), ErrExpectedString},
		{"80", new(uint64), nil},
		{"02", new([]uint64), ErrExpectedList},
	}
	for i, test := range tests {
		var err error
		switch val := test.val.(type) {
		case *[]byte:
			err = DecodeBytes(unhexLower(test.input), val)
		case *uint64:
			err = DecodeBytes(unhexLower(test.input), val)
		case *[]uint64:
			s := newStreamFromBytes(unhexLower(test.input))
			_, err = s.List()
		}
		if err != test.err {
			t.Errorf("test %d (input %s): error mismatch: got %v, want %v", i, test.input, err, test.err)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	var val []byte
	if err := DecodeBytes(unhexLower("8180FF"), &val); err != ErrMoreThanOneValue {
		t.Fatalf("expected ErrMoreThanOneValue, got %v", err)
	}
}

func TestStreamList(t *testing.T) {
	s := newStreamFromBytes(unhexLower("C80102030405060708"))

	size, err := s.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if size != 8 {
		t.Fatalf("List returned invalid size, got %d, want 8", size)
	}

	for i := uint64(1); i <= 8; i++ {
		v, err := s.Uint64()
		if err != nil {
			t.Fatalf("Uint error: %v", err)
		}
		if v != i {
			t.Fatalf("Uint returned wrong value, got %d, want %d", v, i)
		}
	}

	if _, err := s.Uint64(); err != EOL {
		t.Fatalf("Uint error mismatch, got %v, want %v", err, EOL)
	}
	if err = s.ListEnd(); err != nil {
		t.Fatalf("ListEnd error: %v", err)
	}
}

func TestStreamElemTooLarge(t *testing.T) {
	// An element declaring more content than its enclosing list holds.
	s := newStreamFromBytes(unhexLower("C383FFFFFF"))
	if _, err := s.List(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Bytes(); err != ErrElemTooLarge {
		t.Fatalf("expected ErrElemTooLarge, got %v", err)
	}
}

func TestDecodeRoundtrip(t *testing.T) {
	// Every encoded value must decode back to itself.
	for i, test := range encTests {
		enc, err := EncodeToBytes(test.val)
		if err != nil {
			t.Fatalf("test %d: encode error: %v", i, err)
		}
		switch want := test.val.(type) {
		case []byte:
			var got []byte
			if err := DecodeBytes(enc, &got); err != nil {
				t.Errorf("test %d: decode error: %v", i, err)
			} else if !bytes.Equal(got, want) {
				t.Errorf("test %d: roundtrip mismatch: got %x, want %x", i, got, want)
			}
		case uint64:
			var got uint64
			if err := DecodeBytes(enc, &got); err != nil {
				t.Errorf("test %d: decode error: %v", i, err)
			} else if got != want {
				t.Errorf("test %d: roundtrip mismatch: got %d, want %d", i, got, want)
			}
		case *big.Int:
			got := new(big.Int)
			if err := DecodeBytes(enc, got); err != nil {
				t.Errorf("test %d: decode error: %v", i, err)
			} else if got.Cmp(want) != 0 {
				t.Errorf("test %d: roundtrip mismatch: got %v, want %v", i, got, want)
			}
		case *uint256.Int:
			got := new(uint256.Int)
			if err := DecodeBytes(enc, got); err != nil {
				t.Errorf("test %d: decode error: %v", i, err)
			} else if !got.Eq(want) {
				t.Errorf("test %d: roundtrip mismatch: got %v, want %v", i, got, want)
			}
		}
	}
}

func TestRawSplit(t *testing.T) {
	// Split a string followed by trailing data.
	content, rest, err := SplitString(unhexLower("83646F67FFFF"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "dog" {
		t.Fatalf("wrong content %q", content)
	}
	if !bytes.Equal(rest, unhexLower("FFFF")) {
		t.Fatalf("wrong rest %x", rest)
	}

	// CountValues over a flat list payload.
	payload, _, err := SplitList(unhexLower("C80102030405060708"))
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := CountValues(payload); n != 8 {
		t.Fatalf("wrong value count %d, want 8", n)
	}
}

func TestSplitUint64(t *testing.T) {
	tests := []struct {
		input string
		val   uint64
		rest  string
		err   error
	}{
		{"01", 1, "", nil},
		{"7FFF", 0x7F, "FF", nil},
		{"80FF", 0, "FF", nil},
		{"81FAFF", 0xFA, "FF", nil},
		{"82FAFAFF", 0xFAFA, "FF", nil},
		{"888FAFAFAFAFAFAFA8FF", 0x8FAFAFAFAFAFAFA8, "FF", nil},
		{"8400000000", 0, "", ErrCanonInt},
		{"00", 0, "", ErrCanonInt},
		{"81000000", 0, "", ErrCanonSize},
		{"89FFFFFFFFFFFFFFFFFF", 0, "", errUintOverflow},
	}
	for i, test := range tests {
		val, rest, err := SplitUint64(unhexLower(test.input))
		if val != test.val {
			t.Errorf("test %d: val mismatch: got %x, want %x (input %q)", i, val, test.val, test.input)
		}
		if err != test.err {
			t.Errorf("test %d: err mismatch: got %v, want %v (input %q)", i, err, test.err, test.input)
		}
		if err == nil && !bytes.Equal(rest, unhexLower(test.rest)) {
			t.Errorf("test %d: rest mismatch: got %x, want %q (input %q)", i, rest, test.rest, test.input)
		}
	}
}
