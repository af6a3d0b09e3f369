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
	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/crypto"
)

var (
	// EmptyRootHash is the known root hash of an empty merkle trie:
	// keccak256(rlp("")).
	EmptyRootHash = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

	// EmptyUncleHash is the known hash of the empty ommer list:
	// keccak256(rlp([])).
	EmptyUncleHash = common.HexToHash("1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347")

	// EmptyCodeHash is the known hash of the empty EVM bytecode.
	EmptyCodeHash = crypto.Keccak256Hash(nil)

	// EmptyTxsHash is the known hash of the empty transaction set.
	EmptyTxsHash = EmptyRootHash

	// EmptyReceiptsHash is the known hash of the empty receipt set.
	EmptyReceiptsHash = EmptyRootHash
)
