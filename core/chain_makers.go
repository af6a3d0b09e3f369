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
	"math/big"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/consensus"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/params"
)

// CalcGasLimit clamps the desired gas limit into the band the parent's gas
// limit allows: each block may move the limit by at most parent/1024 - 1,
// and never below the chain minimum.
func CalcGasLimit(config *params.ChainConfig, parentGasLimit, desiredLimit uint64) uint64 {
	delta := parentGasLimit/config.GasLimitBoundDivisor - 1
	limit := parentGasLimit
	if desiredLimit < config.MinGasLimit+1 {
		desiredLimit = config.MinGasLimit + 1
	}
	// If we're outside our allowed gas range, we try to hone towards them
	if limit < desiredLimit {
		limit = parentGasLimit + delta
		if limit > desiredLimit {
			limit = desiredLimit
		}
		return limit
	}
	if limit > desiredLimit {
		limit = parentGasLimit - delta
		if limit < desiredLimit {
			limit = desiredLimit
		}
	}
	return limit
}

// NewChildBlock constructs the skeleton of the parent's successor: number,
// parent hash, difficulty and a clamped gas limit are derived from the
// parent and the chain config; beneficiary, timestamp and extra data are
// taken verbatim. The state, transaction and receipt commitments are left
// at the parent state and the empty sets until the block is processed.
func NewChildBlock(config *params.ChainConfig, parent *types.Block, coinbase common.Address, timestamp uint64, extra []byte) *types.Block {
	header := &types.Header{
		ParentHash:  parent.Hash(),
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    coinbase,
		Root:        parent.Root(),
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  consensus.CalcDifficulty(config, timestamp, parent.Header()),
		Number:      new(big.Int).Add(parent.Number(), big.NewInt(1)),
		GasLimit:    CalcGasLimit(config, parent.GasLimit(), parent.GasLimit()),
		Time:        timestamp,
		Extra:       extra,
	}
	return types.NewBlockWithHeader(header)
}
