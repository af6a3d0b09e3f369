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
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/ethdb/memorydb"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/trie"
	"github.com/stretchr/testify/require"
)

type chainEnv struct {
	chain   *BlockChain
	genesis *Genesis
	key     *ecdsa.PrivateKey
	addr    common.Address
	signer  types.Signer
}

func newChainEnv(t *testing.T) *chainEnv {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	genesis := &Genesis{
		Config:     params.TestChainConfig,
		GasLimit:   params.GenesisGasLimit,
		Difficulty: big.NewInt(params.InitialDifficulty),
		Alloc: GenesisAlloc{
			addr: {Balance: big.NewInt(params.Ether)},
		},
	}
	chain, err := NewBlockChain(memorydb.New(), genesis)
	require.NoError(t, err)
	return &chainEnv{
		chain:   chain,
		genesis: genesis,
		key:     key,
		addr:    addr,
		signer:  types.MakeSigner(params.TestChainConfig, big.NewInt(1)),
	}
}

// sealBlock processes the given transactions on top of the parent and
// assembles a block whose header commitments match the outcome.
func (env *chainEnv) sealBlock(t *testing.T, parent *types.Block, coinbase common.Address, txs []*types.Transaction) *types.Block {
	skeleton := NewChildBlock(env.chain.Config(), parent, coinbase, parent.Time()+10, nil)
	header := skeleton.Header()

	statedb, err := state.New(parent.Root(), state.NewDatabase(env.chain.TrieDB()))
	require.NoError(t, err)

	processor := NewStateProcessor(env.chain.Config(), env.chain)
	pending := types.NewBlockWithHeader(header).WithBody(types.Body{Transactions: txs})
	receipts, _, usedGas, err := processor.Process(pending, statedb)
	require.NoError(t, err)

	header.GasUsed = usedGas
	header.Root = statedb.IntermediateRoot()
	return types.NewBlock(header, txs, nil, receipts, trie.NewEmpty(nil))
}

func TestInsertChain(t *testing.T) {
	env := newChainEnv(t)
	var (
		coinbase  = common.HexToAddress("0x05")
		recipient = common.HexToAddress("0xdeadbeef")
		gasPrice  = big.NewInt(3)
	)
	parent := env.chain.CurrentBlock()

	tx, err := types.SignTx(types.NewTransaction(0, recipient, big.NewInt(1000), params.TxGas, gasPrice, nil), env.signer, env.key)
	require.NoError(t, err)

	block := env.sealBlock(t, parent, coinbase, []*types.Transaction{tx})
	n, err := env.chain.InsertChain([]*types.Block{block})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, block.Hash(), env.chain.CurrentBlock().Hash())

	statedb, err := env.chain.State()
	require.NoError(t, err)

	// Value arrived, fees went to the beneficiary on top of the block reward.
	require.Equal(t, uint64(1000), statedb.GetBalance(recipient).Uint64())
	fee := new(big.Int).SetUint64(params.TxGas * 3)
	wantCoinbase := new(big.Int).Add(env.genesis.Config.BlockReward, fee)
	require.Equal(t, wantCoinbase.String(), statedb.GetBalance(coinbase).ToBig().String())
	require.Equal(t, uint64(1), statedb.GetNonce(env.addr))

	// A second block without transactions extends the chain.
	empty := env.sealBlock(t, block, coinbase, nil)
	_, err = env.chain.InsertChain([]*types.Block{empty})
	require.NoError(t, err)
	require.Equal(t, uint64(2), env.chain.CurrentBlock().NumberU64())
}

func TestInsertInvalidBlock(t *testing.T) {
	env := newChainEnv(t)
	parent := env.chain.CurrentBlock()

	block := env.sealBlock(t, parent, common.HexToAddress("0x05"), nil)
	// Corrupt the state commitment: the holistic check must refuse it.
	header := block.Header()
	header.Root = common.HexToHash("0xbad0")
	bad := types.NewBlockWithHeader(header)

	if _, err := env.chain.InsertChain([]*types.Block{bad}); err == nil {
		t.Fatal("corrupted block accepted")
	}
	require.Equal(t, parent.Hash(), env.chain.CurrentBlock().Hash())
}

func TestInsertUnknownAncestor(t *testing.T) {
	env := newChainEnv(t)
	header := env.chain.CurrentBlock().Header()
	header.Number = big.NewInt(5)
	header.ParentHash = common.HexToHash("0x1234")
	orphan := types.NewBlockWithHeader(header)

	_, err := env.chain.InsertChain([]*types.Block{orphan})
	require.ErrorIs(t, err, ErrUnknownAncestor)
}

// TestProcessDeterminism re-applies the same transactions to the same parent
// state and requires byte-identical outcomes.
func TestProcessDeterminism(t *testing.T) {
	env := newChainEnv(t)
	parent := env.chain.CurrentBlock()
	coinbase := common.HexToAddress("0x05")

	var txs []*types.Transaction
	for nonce := uint64(0); nonce < 3; nonce++ {
		tx, err := types.SignTx(types.NewTransaction(nonce, common.BytesToAddress([]byte{byte(nonce + 1)}),
			big.NewInt(int64(100*(nonce+1))), params.TxGas, big.NewInt(2), nil), env.signer, env.key)
		require.NoError(t, err)
		txs = append(txs, tx)
	}
	first := env.sealBlock(t, parent, coinbase, txs)
	second := env.sealBlock(t, parent, coinbase, txs)

	require.Equal(t, first.Root(), second.Root())
	require.Equal(t, first.TxHash(), second.TxHash())
	require.Equal(t, first.ReceiptHash(), second.ReceiptHash())
	require.Equal(t, first.Hash(), second.Hash())
}

// TestOmmerRewards checks the inclusion reward split: R/32 per ommer to the
// block beneficiary and R*(8-depth)/8 to each ommer's beneficiary.
func TestOmmerRewards(t *testing.T) {
	env := newChainEnv(t)
	parent := env.chain.CurrentBlock()
	var (
		coinbase   = common.HexToAddress("0x05")
		uncleMiner = common.HexToAddress("0x06")
		reward     = env.genesis.Config.BlockReward
	)
	skeleton := NewChildBlock(env.chain.Config(), parent, coinbase, parent.Time()+10, nil)
	header := skeleton.Header()
	header.Number = big.NewInt(2) // pretend depth so the uncle formula bites

	uncle := &types.Header{
		Number:     big.NewInt(1),
		Coinbase:   uncleMiner,
		Difficulty: big.NewInt(params.InitialDifficulty),
		GasLimit:   header.GasLimit,
		Time:       parent.Time() + 5,
	}
	statedb, err := state.New(parent.Root(), state.NewDatabase(env.chain.TrieDB()))
	require.NoError(t, err)
	AccumulateRewards(env.genesis.Config, statedb, header, []*types.Header{uncle})

	// depth 1: uncle gets 7/8 R, the block beneficiary R + R/32.
	wantUncle := new(big.Int).Mul(reward, big.NewInt(7))
	wantUncle.Div(wantUncle, big.NewInt(8))
	require.Equal(t, wantUncle.String(), statedb.GetBalance(uncleMiner).ToBig().String())

	wantMiner := new(big.Int).Add(reward, new(big.Int).Div(reward, big.NewInt(32)))
	require.Equal(t, wantMiner.String(), statedb.GetBalance(coinbase).ToBig().String())
}
