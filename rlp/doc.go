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

/*
Package rlp implements the RLP serialization format.

The purpose of RLP (Recursive Linear Prefix) is to encode arbitrarily nested
arrays of binary data, and RLP is the main encoding method used to serialize
objects in Ethereum. The only purpose of RLP is to encode structure; encoding
specific atomic data types (strings, ints, floats) is left up to higher-order
protocols. In Ethereum integers must be represented in big endian binary form
with no leading zeroes (thus making the integer value zero equivalent to the
empty byte slice).

Types implement their consensus encoding by satisfying the Encoder and
Decoder interfaces. Encoders write through an EncoderBuffer, which tracks
pending list headers so that nested lists cost no intermediate allocations.
Decoders pull from a Stream, which verifies the canonical form of every
size prefix and integer it reads: a value that decodes successfully
re-encodes to the identical bytes.
*/
package rlp
