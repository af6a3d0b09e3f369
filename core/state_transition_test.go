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
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/state"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/core/vm"
	"github.com/emberlabs/ember/crypto"
	"github.com/emberlabs/ember/ethdb/memorydb"
	"github.com/emberlabs/ember/params"
	"github.com/emberlabs/ember/triedb"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestEVM(t *testing.T, coinbase common.Address) (*vm.EVM, *state.StateDB) {
	tdb := triedb.NewDatabase(memorydb.New(), nil)
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabase(tdb))
	require.NoError(t, err)

	blockCtx := vm.BlockContext{
		CanTransfer: CanTransfer,
		Transfer:    Transfer,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    coinbase,
		BlockNumber: big.NewInt(1),
		Time:        10,
		Difficulty:  big.NewInt(131072),
		GasLimit:    10_000_000,
	}
	return vm.NewEVM(blockCtx, vm.TxContext{}, statedb, params.TestChainConfig), statedb
}

// TestApplyCreationMessage replays the canonical creation scenario: a sender
// with balance 400000 and nonce 5 deploys a STOP-only contract carrying an
// endowment of 5 wei at gas price 3.
func TestApplyCreationMessage(t *testing.T) {
	var (
		sender      = common.HexToAddress("0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6")
		beneficiary = common.HexToAddress("0x05")
	)
	evm, statedb := newTestEVM(t, beneficiary)
	statedb.AddBalance(sender, uint256.NewInt(400000))
	statedb.SetNonce(sender, 5)

	msg := &Message{
		From:     sender,
		To:       nil, // contract creation
		Nonce:    5,
		Value:    big.NewInt(5),
		GasLimit: 100000,
		GasPrice: big.NewInt(3),
		Data:     []byte{0x00}, // STOP
	}
	evm.Reset(NewEVMTxContext(msg), statedb)

	gp := new(GasPool).AddGas(10_000_000)
	result, err := ApplyMessage(evm, msg, gp)
	require.NoError(t, err)
	require.NoError(t, result.Err)

	// Intrinsic 53000 + 4 for the single zero byte of init code.
	require.Equal(t, uint64(53004), result.UsedGas)

	contractAddr := crypto.CreateAddress(sender, 5)
	require.Equal(t, uint64(240983), statedb.GetBalance(sender).Uint64())
	require.Equal(t, uint64(6), statedb.GetNonce(sender))
	require.Equal(t, uint64(159012), statedb.GetBalance(beneficiary).Uint64())
	require.Equal(t, uint64(5), statedb.GetBalance(contractAddr).Uint64())
	require.Empty(t, statedb.Logs())
}

// Gas conservation: sender debit plus beneficiary credit must equal
// gas_used * gas_price plus the transferred value.
func TestGasConservation(t *testing.T) {
	var (
		sender      = common.HexToAddress("0xaaaa")
		dest        = common.HexToAddress("0xbbbb")
		beneficiary = common.HexToAddress("0xcccc")
	)
	evm, statedb := newTestEVM(t, beneficiary)
	statedb.AddBalance(sender, uint256.NewInt(10_000_000))

	msg := &Message{
		From:     sender,
		To:       &dest,
		Nonce:    0,
		Value:    big.NewInt(12345),
		GasLimit: 50000,
		GasPrice: big.NewInt(7),
		Data:     nil,
	}
	evm.Reset(NewEVMTxContext(msg), statedb)

	gp := new(GasPool).AddGas(10_000_000)
	result, err := ApplyMessage(evm, msg, gp)
	require.NoError(t, err)
	require.Equal(t, params.TxGas, result.UsedGas)

	senderSpent := 10_000_000 - statedb.GetBalance(sender).Uint64()
	beneficiaryGain := statedb.GetBalance(beneficiary).Uint64()
	fee := result.UsedGas * 7
	require.Equal(t, fee+12345, senderSpent)
	require.Equal(t, fee, beneficiaryGain)
	require.Equal(t, uint64(12345), statedb.GetBalance(dest).Uint64())
}

func TestNonceRejection(t *testing.T) {
	sender := common.HexToAddress("0xaaaa")
	evm, statedb := newTestEVM(t, common.HexToAddress("0x05"))
	statedb.AddBalance(sender, uint256.NewInt(1_000_000))
	statedb.SetNonce(sender, 3)

	dest := common.HexToAddress("0xbbbb")
	msg := &Message{
		From: sender, To: &dest, Nonce: 2,
		Value: new(big.Int), GasLimit: 21000, GasPrice: big.NewInt(1),
	}
	evm.Reset(NewEVMTxContext(msg), statedb)
	_, err := ApplyMessage(evm, msg, new(GasPool).AddGas(1_000_000))
	require.True(t, errors.Is(err, ErrNonceTooLow))

	msg.Nonce = 4
	_, err = ApplyMessage(evm, msg, new(GasPool).AddGas(1_000_000))
	require.True(t, errors.Is(err, ErrNonceTooHigh))

	// A hard reject leaves the state untouched.
	require.Equal(t, uint64(1_000_000), statedb.GetBalance(sender).Uint64())
	require.Equal(t, uint64(3), statedb.GetNonce(sender))
}

func TestInsufficientFundsRejection(t *testing.T) {
	sender := common.HexToAddress("0xaaaa")
	evm, statedb := newTestEVM(t, common.HexToAddress("0x05"))
	statedb.AddBalance(sender, uint256.NewInt(20999))

	dest := common.HexToAddress("0xbbbb")
	msg := &Message{
		From: sender, To: &dest, Nonce: 0,
		Value: new(big.Int), GasLimit: 21000, GasPrice: big.NewInt(1),
	}
	evm.Reset(NewEVMTxContext(msg), statedb)
	_, err := ApplyMessage(evm, msg, new(GasPool).AddGas(1_000_000))
	require.True(t, errors.Is(err, ErrInsufficientFunds))
}

func TestIntrinsicGas(t *testing.T) {
	tests := []struct {
		data     []byte
		creation bool
		want     uint64
	}{
		{nil, false, 21000},
		{nil, true, 53000},
		{[]byte{0x00}, true, 53004},
		{[]byte{0x01}, false, 21068},
		{[]byte{0x00, 0x01, 0x00}, false, 21076},
	}
	for i, test := range tests {
		gas, err := IntrinsicGas(test.data, test.creation)
		require.NoError(t, err)
		if gas != test.want {
			t.Errorf("test %d: intrinsic gas %d, want %d", i, gas, test.want)
		}
	}
}
