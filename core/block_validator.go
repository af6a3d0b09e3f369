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

package core

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emberlabs/ember/consensus"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/trie"
)

// Header validation failures. Validation collects every failing rule rather
// than stopping at the first, so the caller receives the full set.
var (
	// ErrInvalidDifficulty is returned if the difficulty does not match the
	// value derived from the parent per the adjustment algorithm.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrExceededGasLimit is returned if the gas used exceeds the gas limit
	// of the block itself.
	ErrExceededGasLimit = errors.New("gas used exceeds gas limit")

	// ErrInvalidGasLimit is returned if the gas limit leaves the band allowed
	// around the parent's gas limit, or falls below the chain minimum.
	ErrInvalidGasLimit = errors.New("invalid gas limit")

	// ErrInvalidTimestamp is returned if the timestamp of a block is not after
	// its parent's.
	ErrInvalidTimestamp = errors.New("timestamp not after parent")

	// ErrInvalidNumber is returned if the number of a block is not its
	// parent's plus one, or non-zero without a parent.
	ErrInvalidNumber = errors.New("invalid block number")

	// ErrExtraDataTooLarge is returned if the extra-data field exceeds the
	// protocol maximum.
	ErrExtraDataTooLarge = errors.New("extra data too large")
)

// Holistic validity failures: mismatches between the header commitments and
// the values recomputed from the block contents against the parent state.
var (
	ErrStateRootMismatch        = errors.New("state root mismatch")
	ErrOmmersHashMismatch       = errors.New("ommers hash mismatch")
	ErrTransactionsRootMismatch = errors.New("transactions root mismatch")
	ErrReceiptsRootMismatch     = errors.New("receipts root mismatch")
)

// BlockValidator is responsible for validating block headers and processed
// state against the rules of the configured chain.
type BlockValidator struct {
	config *params.ChainConfig // Chain configuration options
}

// NewBlockValidator returns a new block validator.
func NewBlockValidator(config *params.ChainConfig) *BlockValidator {
	return &BlockValidator{config: config}
}

// ValidateHeader checks a header against its parent, collecting every
// violated rule into the returned set. An empty set means the header is
// valid. The parent may be nil for a genesis header.
func (v *BlockValidator) ValidateHeader(header, parent *types.Header) mapset.Set[error] {
	failures := mapset.NewSet[error]()

	// The difficulty has to follow from the parent per the adjustment
	// algorithm; the genesis difficulty is fixed by the chain config.
	if parent != nil {
		if header.Difficulty == nil || header.Difficulty.Cmp(consensus.CalcDifficulty(v.config, header.Time, parent)) != 0 {
			failures.Add(ErrInvalidDifficulty)
		}
	} else if header.Difficulty == nil || header.Difficulty.Cmp(v.config.InitialDifficulty) != 0 {
		failures.Add(ErrInvalidDifficulty)
	}

	// The consumed gas is bounded by the block's own limit.
	if header.GasUsed > header.GasLimit {
		failures.Add(ErrExceededGasLimit)
	}

	// The gas limit must stay within the band determined by the parent and
	// above the chain minimum.
	if parent != nil {
		diff := int64(parent.GasLimit) - int64(header.GasLimit)
		if diff < 0 {
			diff *= -1
		}
		if uint64(diff) >= parent.GasLimit/v.config.GasLimitBoundDivisor {
			failures.Add(ErrInvalidGasLimit)
		}
	}
	if header.GasLimit <= v.config.MinGasLimit {
		failures.Add(ErrInvalidGasLimit)
	}

	// Timestamps advance strictly, and numbers by exactly one.
	if parent != nil {
		if header.Time <= parent.Time {
			failures.Add(ErrInvalidTimestamp)
		}
		if header.Number == nil || parent.Number == nil || header.Number.Uint64() != parent.Number.Uint64()+1 {
			failures.Add(ErrInvalidNumber)
		}
	} else if header.Number == nil || header.Number.Sign() != 0 {
		failures.Add(ErrInvalidNumber)
	}

	if uint64(len(header.Extra)) > params.MaximumExtraDataSize {
		failures.Add(ErrExtraDataTooLarge)
	}
	return failures
}

// ValidateState validates the various changes that happen after a state
// transition, comparing the four derived commitments against the header:
// the ommers hash, the transactions root, the receipts root and the state
// root. Every mismatch is collected; an empty set means the block content
// matches its header.
func (v *BlockValidator) ValidateState(block *types.Block, statedb *state.StateDB, receipts types.Receipts) mapset.Set[error] {
	failures := mapset.NewSet[error]()
	header := block.Header()

	if hash := types.CalcUncleHash(block.Uncles()); hash != header.UncleHash {
		failures.Add(ErrOmmersHashMismatch)
	}
	if hash := types.DeriveSha(block.Transactions(), trie.NewEmpty(nil)); hash != header.TxHash {
		failures.Add(ErrTransactionsRootMismatch)
	}
	if hash := types.DeriveSha(receipts, trie.NewEmpty(nil)); hash != header.ReceiptHash {
		failures.Add(ErrReceiptsRootMismatch)
	}
	if root := statedb.IntermediateRoot(); root != header.Root {
		failures.Add(ErrStateRootMismatch)
	}
	return failures
}
