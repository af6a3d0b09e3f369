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
	"fmt"
	"math/big"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/core/vm"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/params"
	"github.com/holiman/uint256"
)

// StateProcessor is a basic Processor, which takes care of transitioning
// state from one point to another.
type StateProcessor struct {
	config *params.ChainConfig // Chain configuration options
	chain  ChainContext        // Header access for the BLOCKHASH window
}

// NewStateProcessor initialises a new StateProcessor.
func NewStateProcessor(config *params.ChainConfig, chain ChainContext) *StateProcessor {
	return &StateProcessor{
		config: config,
		chain:  chain,
	}
}

// Process processes the state changes according to the Ethereum rules by running
// the transaction messages using the statedb and applying any rewards to both
// the processor (coinbase) and any included uncles.
//
// Process returns the receipts and logs accumulated during the process and
// returns the amount of gas that was used in the process. If any of the
// transactions failed to execute due to insufficient gas it will return an error.
func (p *StateProcessor) Process(block *types.Block, statedb *state.StateDB) (types.Receipts, []*types.Log, uint64, error) {
	var (
		receipts types.Receipts
		usedGas  = new(uint64)
		header   = block.Header()
		allLogs  []*types.Log
		gp       = new(GasPool).AddGas(block.GasLimit())
	)
	// Set up the execution environment. The same EVM is reused for all
	// transactions of the block, reset with a fresh tx context each time.
	blockContext := NewEVMBlockContext(header, p.chain, nil)
	evm := vm.NewEVM(blockContext, vm.TxContext{}, statedb, p.config)
	signer := types.MakeSigner(p.config, header.Number)

	// Iterate over and process the individual transactions. Transaction i+1
	// observes the post-state of transaction i.
	for i, tx := range block.Transactions() {
		msg, err := TransactionToMessage(tx, signer)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		statedb.SetTxContext(tx.Hash(), i)

		receipt, err := ApplyTransactionWithEVM(msg, gp, statedb, header, tx, usedGas, evm)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("could not apply tx %d [%v]: %w", i, tx.Hash().Hex(), err)
		}
		receipts = append(receipts, receipt)
		allLogs = append(allLogs, receipt.Logs...)
	}
	// Finalize the block, applying the block and ommer inclusion rewards.
	AccumulateRewards(p.config, statedb, header, block.Uncles())

	return receipts, allLogs, *usedGas, nil
}

// ApplyTransactionWithEVM attempts to apply a transaction to the given state
// database and uses the input parameters for its environment. A receipt
// carrying the intermediate state root is emitted on success.
func ApplyTransactionWithEVM(msg *Message, gp *GasPool, statedb *state.StateDB, header *types.Header, tx *types.Transaction, usedGas *uint64, evm *vm.EVM) (*types.Receipt, error) {
	// Create a new context to be used in the EVM environment.
	evm.Reset(NewEVMTxContext(msg), statedb)

	// Apply the transaction to the current state (included in the env).
	result, err := ApplyMessage(evm, msg, gp)
	if err != nil {
		return nil, err
	}
	// Self-destructed accounts are removed and the intermediate root is
	// computed; that root goes into the receipt.
	root := statedb.IntermediateRoot().Bytes()
	*usedGas += result.UsedGas

	// Create a new receipt for the transaction, storing the intermediate root
	// and gas used by the tx.
	receipt := &types.Receipt{PostState: root, CumulativeGasUsed: *usedGas}
	receipt.TxHash = tx.Hash()
	receipt.GasUsed = result.UsedGas

	// If the transaction created a contract, store the creation address in
	// the receipt.
	if msg.To == nil {
		receipt.ContractAddress = crypto.CreateAddress(evm.TxContext.Origin, tx.Nonce())
	}
	// Set the receipt logs and create the bloom filter.
	receipt.Logs = statedb.GetLogs(tx.Hash(), header.Number.Uint64(), common.Hash{})
	receipt.Bloom = types.CreateBloom(types.Receipts{receipt})
	return receipt, nil
}

// AccumulateRewards credits the coinbase of the given block with the mining
// reward. The total reward consists of the static block reward and rewards
// for included uncles. The coinbase of each uncle block is also rewarded.
func AccumulateRewards(config *params.ChainConfig, statedb *state.StateDB, header *types.Header, uncles []*types.Header) {
	blockReward := config.BlockReward
	// Accumulate the rewards for the miner and any included uncles
	reward := new(big.Int).Set(blockReward)
	r := new(big.Int)
	for _, uncle := range uncles {
		r.Add(uncle.Number, big8)
		r.Sub(r, header.Number)
		r.Mul(r, blockReward)
		r.Div(r, big8)
		ru, _ := uint256.FromBig(r)
		statedb.AddBalance(uncle.Coinbase, ru)

		r.Div(blockReward, big32)
		reward.Add(reward, r)
	}
	rw, _ := uint256.FromBig(reward)
	statedb.AddBalance(header.Coinbase, rw)
}

var (
	big8  = big.NewInt(8)
	big32 = big.NewInt(32)
)
