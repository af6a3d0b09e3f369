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
	"math/big"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/common/hexutil"
	"github.com/emberlabs/ember/core/rawdb"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/triedb"
	"github.com/holiman/uint256"
)

// Genesis specifies the header fields and state of a genesis block. It also
// defines the chain configuration for the chain started by the block.
type Genesis struct {
	Config     *params.ChainConfig `toml:",omitempty"`
	Timestamp  uint64
	ExtraData  hexutil.Bytes `toml:",omitempty"`
	GasLimit   uint64
	Difficulty *big.Int `toml:",omitempty"`
	Coinbase   common.Address
	Alloc      GenesisAlloc
}

// GenesisAlloc specifies the initial state of the genesis block.
type GenesisAlloc map[common.Address]GenesisAccount

// GenesisAccount is an account in the state of the genesis block.
type GenesisAccount struct {
	Code    hexutil.Bytes               `toml:",omitempty"`
	Storage map[common.Hash]common.Hash `toml:",omitempty"`
	Balance *big.Int
	Nonce   uint64 `toml:",omitempty"`
}

// ErrGenesisNoConfig is returned when a genesis carries no chain configuration.
var ErrGenesisNoConfig = errors.New("genesis has no chain configuration")

// DefaultGenesisBlock returns the default genesis of the main network.
func DefaultGenesisBlock() *Genesis {
	return &Genesis{
		Config:     params.MainnetChainConfig,
		GasLimit:   params.GenesisGasLimit,
		Difficulty: params.MainnetChainConfig.InitialDifficulty,
		Alloc:      GenesisAlloc{},
	}
}

// ToBlock assembles the genesis block, flushing the allocation into a fresh
// state whose nodes accumulate in db.
func (g *Genesis) ToBlock(db *triedb.Database) (*types.Block, error) {
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabase(db))
	if err != nil {
		return nil, err
	}
	for addr, account := range g.Alloc {
		balance, _ := uint256.FromBig(account.Balance)
		statedb.AddBalance(addr, balance)
		statedb.SetCode(addr, account.Code)
		statedb.SetNonce(addr, account.Nonce)
		for key, value := range account.Storage {
			statedb.SetState(addr, key, value)
		}
	}
	root, err := statedb.Commit()
	if err != nil {
		return nil, err
	}
	head := &types.Header{
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    g.Coinbase,
		Root:        root,
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  g.Difficulty,
		Number:      new(big.Int),
		GasLimit:    g.GasLimit,
		Time:        g.Timestamp,
		Extra:       g.ExtraData,
	}
	if g.GasLimit == 0 {
		head.GasLimit = params.GenesisGasLimit
	}
	if g.Difficulty == nil {
		if g.Config != nil && g.Config.InitialDifficulty != nil {
			head.Difficulty = g.Config.InitialDifficulty
		} else {
			head.Difficulty = big.NewInt(params.InitialDifficulty)
		}
	}
	return types.NewBlockWithHeader(head), nil
}

// Commit writes the block and state of a genesis specification to the
// database. The block is committed as the canonical head block.
func (g *Genesis) Commit(db ethdb.KeyValueStore, tdb *triedb.Database) (*types.Block, error) {
	if g.Config == nil {
		return nil, ErrGenesisNoConfig
	}
	block, err := g.ToBlock(tdb)
	if err != nil {
		return nil, err
	}
	if block.NumberU64() != 0 {
		return nil, errors.New("can't commit genesis block with number > 0")
	}
	if err := tdb.Commit(); err != nil {
		return nil, err
	}
	rawdb.WriteBlock(db, block)
	rawdb.WriteCanonicalHash(db, block.Hash(), block.NumberU64())
	rawdb.WriteHeadBlockHash(db, block.Hash())
	return block, nil
}
