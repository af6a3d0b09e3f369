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

// Package core implements the Ethereum consensus protocol.
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/rawdb"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb"
	"github.com/emberlabs/ember/log"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/triedb"
)

// BlockChain represents the canonical chain given a database with a genesis
// block. The chain imports blocks strictly sequentially: each incoming block
// is validated against its parent header, processed against the parent
// state, holistically validated, and only then persisted.
//
// Processing one block at a time is also the serialization discipline for
// the shared node database: readers may run concurrently, the single writer
// is the import path.
type BlockChain struct {
	chainConfig *params.ChainConfig
	db          ethdb.KeyValueStore
	triedb      *triedb.Database
	statedb     *state.Database

	validator *BlockValidator
	processor *StateProcessor

	mu           sync.Mutex
	currentBlock *types.Block

	logger log.Logger
}

// NewBlockChain returns a fully initialised block chain using information
// available in the database. If the database is empty, the given genesis
// specification is committed first.
func NewBlockChain(db ethdb.KeyValueStore, genesis *Genesis) (*BlockChain, error) {
	if genesis == nil || genesis.Config == nil {
		return nil, ErrGenesisNoConfig
	}
	tdb := triedb.NewDatabase(db, nil)

	// Use the stored genesis if there is one, otherwise commit the
	// specification as block zero.
	var genesisBlock *types.Block
	if stored := rawdb.ReadCanonicalHash(db, 0); stored != (common.Hash{}) {
		genesisBlock = rawdb.ReadBlock(db, stored)
		if genesisBlock == nil {
			return nil, errors.New("genesis block corrupted in database")
		}
	} else {
		var err error
		genesisBlock, err = genesis.Commit(db, tdb)
		if err != nil {
			return nil, err
		}
	}
	bc := &BlockChain{
		chainConfig: genesis.Config,
		db:          db,
		triedb:      tdb,
		statedb:     state.NewDatabase(tdb),
		validator:   NewBlockValidator(genesis.Config),
		logger:      log.New("module", "blockchain"),
	}
	bc.processor = NewStateProcessor(genesis.Config, bc)

	// Restore the head block, falling back to genesis.
	bc.currentBlock = genesisBlock
	if head := rawdb.ReadHeadBlockHash(db); head != (common.Hash{}) {
		if block := rawdb.ReadBlock(db, head); block != nil {
			bc.currentBlock = block
		}
	}
	bc.logger.Info("Loaded chain", "head", bc.currentBlock.NumberU64(), "hash", bc.currentBlock.Hash())
	return bc, nil
}

// Config returns the chain configuration.
func (bc *BlockChain) Config() *params.ChainConfig { return bc.chainConfig }

// TrieDB returns the trie node database of the chain.
func (bc *BlockChain) TrieDB() *triedb.Database { return bc.triedb }

// CurrentBlock returns the head block of the canonical chain.
func (bc *BlockChain) CurrentBlock() *types.Block {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.currentBlock
}

// GetHeader retrieves a header by hash. The number argument exists to
// satisfy the ChainContext interface and is unused by this implementation.
func (bc *BlockChain) GetHeader(hash common.Hash, number uint64) *types.Header {
	return rawdb.ReadHeader(bc.db, hash)
}

// GetBlockByHash retrieves a block by hash.
func (bc *BlockChain) GetBlockByHash(hash common.Hash) *types.Block {
	return rawdb.ReadBlock(bc.db, hash)
}

// GetBlockByNumber retrieves a canonical block by number.
func (bc *BlockChain) GetBlockByNumber(number uint64) *types.Block {
	hash := rawdb.ReadCanonicalHash(bc.db, number)
	if hash == (common.Hash{}) {
		return nil
	}
	return rawdb.ReadBlock(bc.db, hash)
}

// State returns a state database at the current head.
func (bc *BlockChain) State() (*state.StateDB, error) {
	return state.New(bc.CurrentBlock().Root(), bc.statedb)
}

// InsertChain inserts the given ordered batch of blocks, validating each
// against its parent before extending the canonical chain. It returns the
// number of blocks imported and an error describing the first failure.
func (bc *BlockChain) InsertChain(chain []*types.Block) (int, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	for i, block := range chain {
		if bc.GetHeader(block.Hash(), block.NumberU64()) != nil {
			continue // already known, skip silently
		}
		parent := rawdb.ReadBlock(bc.db, block.ParentHash())
		if parent == nil {
			return i, fmt.Errorf("block %d [%v]: %w", block.NumberU64(), block.Hash().TerminalString(), ErrUnknownAncestor)
		}
		if err := bc.insertBlock(block, parent); err != nil {
			return i, fmt.Errorf("block %d [%v]: %w", block.NumberU64(), block.Hash().TerminalString(), err)
		}
		bc.logger.Info("Imported new block", "number", block.NumberU64(), "hash", block.Hash(),
			"txs", len(block.Transactions()), "gas", block.GasUsed())
	}
	return len(chain), nil
}

// insertBlock validates and executes a single block on top of its parent.
func (bc *BlockChain) insertBlock(block, parent *types.Block) error {
	// Rule-check the header first, reporting every violated rule.
	if failures := bc.validator.ValidateHeader(block.Header(), parent.Header()); failures.Cardinality() > 0 {
		return fmt.Errorf("invalid header: %v", failures.ToSlice())
	}
	// Reset to the parent state and replay the block on top of it.
	statedb, err := state.New(parent.Root(), bc.statedb)
	if err != nil {
		return err
	}
	receipts, _, usedGas, err := bc.processor.Process(block, statedb)
	if err != nil {
		return err
	}
	if usedGas != block.GasUsed() {
		return fmt.Errorf("invalid gas used (remote: %d local: %d)", block.GasUsed(), usedGas)
	}
	// Compare the four derived commitments against the header.
	if failures := bc.validator.ValidateState(block, statedb, receipts); failures.Cardinality() > 0 {
		return fmt.Errorf("invalid block: %v", failures.ToSlice())
	}
	// All checks out: persist state and block, move the head.
	if _, err := statedb.Commit(); err != nil {
		return err
	}
	if err := bc.triedb.Commit(); err != nil {
		return err
	}
	rawdb.WriteBlock(bc.db, block)
	rawdb.WriteCanonicalHash(bc.db, block.Hash(), block.NumberU64())
	rawdb.WriteHeadBlockHash(bc.db, block.Hash())
	bc.currentBlock = block
	return nil
}
