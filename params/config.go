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

// Package params holds the chain configuration and protocol constants.
package params

import (
	"fmt"
	"math/big"
)

// MainnetChainConfig is the chain parameters to run a node on the main network.
var MainnetChainConfig = &ChainConfig{
	ChainID:                big.NewInt(1),
	HomesteadBlock:         big.NewInt(1_150_000),
	BlockReward:            FrontierBlockReward,
	InitialDifficulty:      big.NewInt(17_179_869_184),
	MinimumDifficulty:      big.NewInt(MinimumDifficulty),
	DifficultyBoundDivisor: big.NewInt(DifficultyBoundDivisor),
	GasLimitBoundDivisor:   GasLimitBoundDivisor,
	MinGasLimit:            MinGasLimit,
	Bootnodes:              MainnetBootnodes,
}

// TestChainConfig contains every protocol change active from genesis, with
// the default difficulty parameters. It is used in tests and private chains.
var TestChainConfig = &ChainConfig{
	ChainID:                big.NewInt(1337),
	HomesteadBlock:         big.NewInt(0),
	BlockReward:            FrontierBlockReward,
	InitialDifficulty:      big.NewInt(InitialDifficulty),
	MinimumDifficulty:      big.NewInt(MinimumDifficulty),
	DifficultyBoundDivisor: big.NewInt(DifficultyBoundDivisor),
	GasLimitBoundDivisor:   GasLimitBoundDivisor,
	MinGasLimit:            MinGasLimit,
}

// ChainConfig is the core config which determines the blockchain settings.
//
// ChainConfig is carried by the genesis specification, so any network,
// identified by its genesis block, can have its own set of configuration
// options. It is threaded through every state
// transition as an explicit argument; nothing reads it from global state.
type ChainConfig struct {
	// ChainID identifies the chain for replay-protected (EIP-155) transaction
	// signing. A nil chain id restricts the chain to unprotected signatures,
	// under the Homestead or Frontier rules of each block.
	ChainID *big.Int `toml:",omitempty"`

	// HomesteadBlock is the block at which the Homestead rules (difficulty
	// formula, signature malleability limit, DELEGATECALL opcode)
	// activate. nil means never.
	HomesteadBlock *big.Int `toml:",omitempty"`

	// BlockReward is the wei credited to the beneficiary of each block, on
	// top of transaction fees and ommer inclusion rewards.
	BlockReward *big.Int

	// Difficulty parameters, see CalcDifficulty.
	InitialDifficulty      *big.Int
	MinimumDifficulty      *big.Int
	DifficultyBoundDivisor *big.Int

	// Gas limit band parameters for header validation.
	GasLimitBoundDivisor uint64
	MinGasLimit          uint64

	// Bootnodes are the enode URLs of the P2P bootstrap nodes for this chain.
	// The core does not dial them; they are carried for the embedding host.
	Bootnodes []string `toml:",omitempty"`
}

// IsHomestead returns whether num is either equal to the homestead block or greater.
func (c *ChainConfig) IsHomestead(num *big.Int) bool {
	if c.HomesteadBlock == nil || num == nil {
		return false
	}
	return c.HomesteadBlock.Cmp(num) <= 0
}

// String implements the fmt.Stringer interface.
func (c *ChainConfig) String() string {
	return fmt.Sprintf("{ChainID: %v Homestead: %v BlockReward: %v}",
		c.ChainID,
		c.HomesteadBlock,
		c.BlockReward,
	)
}
