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
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/consensus"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb/memorydb"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/triedb"
	"github.com/stretchr/testify/require"
)

// frontierConfig runs the pre-Homestead rules from genesis; the difficulty
// continuity fixtures below are stated against them.
var frontierConfig = &params.ChainConfig{
	BlockReward:            params.FrontierBlockReward,
	InitialDifficulty:      big.NewInt(131072),
	MinimumDifficulty:      big.NewInt(params.MinimumDifficulty),
	DifficultyBoundDivisor: big.NewInt(params.DifficultyBoundDivisor),
	GasLimitBoundDivisor:   params.GasLimitBoundDivisor,
	MinGasLimit:            params.MinGasLimit,
}

func TestDifficultyContinuity(t *testing.T) {
	parent := &types.Header{
		Number:     big.NewInt(32),
		Time:       55,
		Difficulty: big.NewInt(300000),
	}
	// A fast child gains a difficulty step.
	if d := consensus.CalcDifficulty(frontierConfig, 66, parent); d.Cmp(big.NewInt(300146)) != 0 {
		t.Errorf("fast child difficulty %v, want 300146", d)
	}
	// A slow child loses one.
	if d := consensus.CalcDifficulty(frontierConfig, 88, parent); d.Cmp(big.NewInt(299854)) != 0 {
		t.Errorf("slow child difficulty %v, want 299854", d)
	}
}

func TestDifficultyHomestead(t *testing.T) {
	config := *frontierConfig
	config.HomesteadBlock = big.NewInt(0)
	parent := &types.Header{
		Number:     big.NewInt(32),
		Time:       55,
		Difficulty: big.NewInt(300000),
	}
	// In the 10..19 second band the adjustment factor is zero.
	if d := consensus.CalcDifficulty(&config, 66, parent); d.Cmp(big.NewInt(300000)) != 0 {
		t.Errorf("homestead difficulty %v, want 300000", d)
	}
	// Very slow blocks clamp the factor at -99.
	if d := consensus.CalcDifficulty(&config, 55+10000, parent); d.Cmp(big.NewInt(300000-99*146)) != 0 {
		t.Errorf("slow homestead difficulty %v, want %v", d, 300000-99*146)
	}
}

func TestDifficultyMinimumClamp(t *testing.T) {
	parent := &types.Header{
		Number:     big.NewInt(5),
		Time:       55,
		Difficulty: big.NewInt(131072),
	}
	if d := consensus.CalcDifficulty(frontierConfig, 1000, parent); d.Cmp(big.NewInt(131072)) != 0 {
		t.Errorf("difficulty fell below minimum: %v", d)
	}
}

func TestGasLimitBand(t *testing.T) {
	v := NewBlockValidator(frontierConfig)
	parent := &types.Header{
		Number:     big.NewInt(10),
		Time:       55,
		Difficulty: big.NewInt(300000),
		GasLimit:   1000000,
	}
	child := &types.Header{
		Number:     big.NewInt(11),
		Time:       66,
		Difficulty: consensus.CalcDifficulty(frontierConfig, 66, parent),
		GasLimit:   999500,
	}
	if failures := v.ValidateHeader(child, parent); failures.Cardinality() != 0 {
		t.Errorf("gas limit 999500 rejected: %v", failures.ToSlice())
	}
	child.GasLimit = 999000
	failures := v.ValidateHeader(child, parent)
	if !failures.Contains(ErrInvalidGasLimit) {
		t.Errorf("gas limit 999000 accepted, failures: %v", failures.ToSlice())
	}
}

func TestHeaderValidity(t *testing.T) {
	v := NewBlockValidator(frontierConfig)
	parent := &types.Header{
		Number:     big.NewInt(0),
		Time:       55,
		Difficulty: big.NewInt(131072),
		GasLimit:   200000,
	}
	child := &types.Header{
		Number:     big.NewInt(1),
		Time:       65,
		Difficulty: big.NewInt(131136),
		GasLimit:   200000,
	}
	if failures := v.ValidateHeader(child, parent); failures.Cardinality() != 0 {
		t.Fatalf("valid header rejected: %v", failures.ToSlice())
	}
}

func TestHeaderErrorCollection(t *testing.T) {
	// A header violating several rules at once reports all of them, not
	// just the first.
	v := NewBlockValidator(frontierConfig)
	parent := &types.Header{
		Number:     big.NewInt(0),
		Time:       55,
		Difficulty: big.NewInt(131072),
		GasLimit:   200000,
	}
	child := &types.Header{
		Number:     big.NewInt(5),            // not parent+1
		Time:       55,                       // not after parent
		Difficulty: big.NewInt(1),            // wrong difficulty
		GasLimit:   100,                      // below minimum and outside band
		GasUsed:    200,                      // above its own limit
		Extra:      make([]byte, 33),         // too large
	}
	failures := v.ValidateHeader(child, parent)
	for _, want := range []error{
		ErrInvalidDifficulty, ErrExceededGasLimit, ErrInvalidGasLimit,
		ErrInvalidTimestamp, ErrInvalidNumber, ErrExtraDataTooLarge,
	} {
		if !failures.Contains(want) {
			t.Errorf("missing failure %v in %v", want, failures.ToSlice())
		}
	}
}

func TestHolisticValidity(t *testing.T) {
	v := NewBlockValidator(frontierConfig)
	tdb := triedb.NewDatabase(memorydb.New(), nil)
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabase(tdb))
	require.NoError(t, err)

	// A block whose commitments all match the (empty) content.
	header := &types.Header{
		Number:      big.NewInt(1),
		Time:        65,
		Difficulty:  big.NewInt(131136),
		GasLimit:    200000,
		Root:        types.EmptyRootHash,
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		UncleHash:   types.EmptyUncleHash,
	}
	block := types.NewBlockWithHeader(header)
	if failures := v.ValidateState(block, statedb, nil); failures.Cardinality() != 0 {
		t.Fatalf("valid block rejected: %v", failures.ToSlice())
	}

	// Mutate all four commitments at once: all four mismatches must be
	// reported together.
	bad := types.CopyHeader(header)
	bad.Root = common.HexToHash("0x01")
	bad.UncleHash = common.HexToHash("0x02")
	bad.TxHash = common.HexToHash("0x03")
	bad.ReceiptHash = common.HexToHash("0x04")
	failures := v.ValidateState(types.NewBlockWithHeader(bad), statedb, nil)

	require.Equal(t, 4, failures.Cardinality())
	for _, want := range []error{
		ErrStateRootMismatch, ErrOmmersHashMismatch,
		ErrTransactionsRootMismatch, ErrReceiptsRootMismatch,
	} {
		if !failures.Contains(want) {
			t.Errorf("missing mismatch %v in %v", want, failures.ToSlice())
		}
	}
}
