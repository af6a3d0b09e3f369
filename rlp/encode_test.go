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
	"fmt"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func unhex(str string) []byte {
	b, err := hexDecode(str)
	if err != nil {
		panic(fmt.Sprintf("invalid hex string: %q", str))
	}
	return b
}

func hexDecode(str string) ([]byte, error) {
	b := make([]byte, len(str)/2)
	for i := 0; i < len(b); i++ {
		hi, lo := hexVal(str[2*i]), hexVal(str[2*i+1])
		if hi > 15 || lo > 15 {
			return nil, fmt.Errorf("bad hex")
		}
		b[i] = hi<<4 | lo
	}
	return b, nil
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 255
	}
}

var encTests = []struct {
	val    interface{}
	output string
}{
	// booleans
	{val: true, output: "01"},
	{val: false, output: "80"},

	// integers
	{val: uint64(0), output: "80"},
	{val: uint64(127), output: "7F"},
	{val: uint64(128), output: "8180"},
	{val: uint64(256), output: "820100"},
	{val: uint64(1024), output: "820400"},
	{val: uint64(0xFFFFFF), output: "83FFFFFF"},
	{val: uint64(0xFFFFFFFF), output: "84FFFFFFFF"},
	{val: uint64(0xFFFFFFFFFF), output: "85FFFFFFFFFF"},
	{val: uint64(0xFFFFFFFFFFFF), output: "86FFFFFFFFFFFF"},
	{val: uint64(0xFFFFFFFFFFFFFF), output: "87FFFFFFFFFFFFFF"},
	{val: uint64(0xFFFFFFFFFFFFFFFF), output: "88FFFFFFFFFFFFFFFF"},

	// big integers (should match uint for small values)
	{val: big.NewInt(0), output: "80"},
	{val: big.NewInt(1), output: "01"},
	{val: big.NewInt(127), output: "7F"},
	{val: big.NewInt(128), output: "8180"},
	{val: big.NewInt(256), output: "820100"},
	{val: big.NewInt(1024), output: "820400"},
	{val: big.NewInt(0xFFFFFFFFFFFF), output: "86FFFFFFFFFFFF"},
	{
		val:    new(big.Int).SetBytes(unhex("102030405060708090a0b0c0d0e0f2")),
		output: "8F102030405060708090A0B0C0D0E0F2",
	},
	{
		val:    new(big.Int).SetBytes(unhex("0100020003000400050006000700080009000a000b000c000d000e01")),
		output: "9C0100020003000400050006000700080009000A000B000C000D000E01",
	},

	// uint256
	{val: uint256.NewInt(0), output: "80"},
	{val: uint256.NewInt(1), output: "01"},
	{val: uint256.NewInt(127), output: "7F"},
	{val: uint256.NewInt(128), output: "8180"},
	{
		val:    new(uint256.Int).SetBytes(unhex("0100020003000400050006000700080009000a000b000c000d000e01")),
		output: "9C0100020003000400050006000700080009000A000B000C000D000E01",
	},

	// byte slices
	{val: []byte{}, output: "80"},
	{val: []byte{0x7E}, output: "7E"},
	{val: []byte{0x7F}, output: "7F"},
	{val: []byte{0x80}, output: "8180"},
	{val: []byte{1, 2, 3}, output: "83010203"},

	// strings
	{val: "", output: "80"},
	{val: "\x7E", output: "7E"},
	{val: "\x7F", output: "7F"},
	{val: "\x80", output: "8180"},
	{val: "dog", output: "83646F67"},
	{
		val:    "Lorem ipsum dolor sit amet, consectetur adipisicing eli",
		output: "B74C6F72656D20697073756D20646F6C6F722073697420616D65742C20636F6E7365637465747572206164697069736963696E6720656C69",
	},
	{
		val:    "Lorem ipsum dolor sit amet, consectetur adipisicing elit",
		output: "B8384C6F72656D20697073756D20646F6C6F722073697420616D65742C20636F6E7365637465747572206164697069736963696E6720656C6974",
	},

	// raw values
	{val: RawValue(unhex("01")), output: "01"},
	{val: RawValue(unhex("82FFFF")), output: "82FFFF"},
}

func TestEncode(t *testing.T) {
	for i, test := range encTests {
		output, err := EncodeToBytes(test.val)
		if err != nil {
			t.Errorf("test %d: unexpected error: %v\nvalue %#v", i, err, test.val)
			continue
		}
		if !bytes.Equal(output, unhexLower(test.output)) {
			t.Errorf("test %d: output mismatch:\ngot   %X\nwant  %s\nvalue %#v", i, output, test.output, test.val)
		}
	}
}

func unhexLower(str string) []byte {
	lower := make([]byte, len(str))
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c >= 'A' && c <= 'F' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return unhex(string(lower))
}

func TestEncodeNegativeBigInt(t *testing.T) {
	if _, err := EncodeToBytes(big.NewInt(-1)); err != ErrNegativeBigInt {
		t.Errorf("expected ErrNegativeBigInt, got %v", err)
	}
}

func TestEncoderBufferLists(t *testing.T) {
	// [[], [[]], [[], [[]]]]
	buf := NewEncoderBuffer(nil)
	outer := buf.List()
	buf.ListEnd(buf.List())
	l := buf.List()
	buf.ListEnd(buf.List())
	buf.ListEnd(l)
	l = buf.List()
	buf.ListEnd(buf.List())
	inner := buf.List()
	buf.ListEnd(buf.List())
	buf.ListEnd(inner)
	buf.ListEnd(l)
	buf.ListEnd(outer)

	want := unhex("c7c0c1c0c3c0c1c0")
	if got := buf.ToBytes(); !bytes.Equal(got, want) {
		t.Fatalf("nested list encoding mismatch: got %x want %x", got, want)
	}
	buf.Flush()
}

func TestEncoderBufferLongList(t *testing.T) {
	// A list whose payload exceeds 55 bytes needs the long-form header.
	buf := NewEncoderBuffer(nil)
	list := buf.List()
	for i := 0; i < 60; i++ {
		buf.WriteBytes([]byte{byte(i + 1)})
	}
	buf.ListEnd(list)
	out := buf.ToBytes()
	buf.Flush()

	if out[0] != 0xF8 || out[1] != 60 {
		t.Fatalf("wrong long list header: %x", out[:2])
	}
	if len(out) != 62 {
		t.Fatalf("wrong encoded length %d, want 62", len(out))
	}
}

func TestAppendUint64(t *testing.T) {
	tests := []struct {
		input  uint64
		output string
	}{
		{0, "80"},
		{1, "01"},
		{2, "02"},
		{127, "7f"},
		{128, "8180"},
		{129, "8181"},
		{0xFFFFFF, "83ffffff"},
		{127256, "8301f118"},
	}
	for _, test := range tests {
		x := AppendUint64(nil, test.input)
		if !bytes.Equal(x, unhex(test.output)) {
			t.Errorf("AppendUint64(%d): got %x, want %s", test.input, x, test.output)
		}

		// Check that IntSize returns the appended size.
		length := len(x)
		if s := IntSize(test.input); s != length {
			t.Errorf("IntSize(%d): got %d, want %d", test.input, s, length)
		}
	}
}
