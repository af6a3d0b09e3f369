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

package state

import (
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb/memorydb"
	"github.com/emberlabs/ember/triedb"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) (*StateDB, *Database) {
	tdb := triedb.NewDatabase(memorydb.New(), nil)
	db := NewDatabase(tdb)
	statedb, err := New(types.EmptyRootHash, db)
	require.NoError(t, err)
	return statedb, db
}

func TestEmptyStateRoot(t *testing.T) {
	statedb, _ := newTestState(t)
	require.Equal(t, types.EmptyRootHash, statedb.IntermediateRoot())
}

func TestSnapshotRevert(t *testing.T) {
	statedb, _ := newTestState(t)
	addr := common.HexToAddress("0xaa")

	statedb.AddBalance(addr, uint256.NewInt(42))
	statedb.SetNonce(addr, 7)
	statedb.SetState(addr, common.HexToHash("0x01"), common.HexToHash("0x02"))

	snap := statedb.Snapshot()

	statedb.AddBalance(addr, uint256.NewInt(58))
	statedb.SetNonce(addr, 8)
	statedb.SetState(addr, common.HexToHash("0x01"), common.HexToHash("0x99"))
	statedb.SetCode(addr, []byte{0x60, 0x00})

	statedb.RevertToSnapshot(snap)

	require.Equal(t, uint64(42), statedb.GetBalance(addr).Uint64())
	require.Equal(t, uint64(7), statedb.GetNonce(addr))
	require.Equal(t, common.HexToHash("0x02"), statedb.GetState(addr, common.HexToHash("0x01")))
	require.Nil(t, statedb.GetCode(addr))
}

func TestSnapshotRevertCreate(t *testing.T) {
	statedb, _ := newTestState(t)
	addr := common.HexToAddress("0xbb")

	snap := statedb.Snapshot()
	statedb.CreateAccount(addr)
	statedb.AddBalance(addr, uint256.NewInt(1))
	require.True(t, statedb.Exist(addr))

	statedb.RevertToSnapshot(snap)
	require.False(t, statedb.Exist(addr))
}

func TestSelfDestruct(t *testing.T) {
	statedb, _ := newTestState(t)
	addr := common.HexToAddress("0xcc")

	statedb.AddBalance(addr, uint256.NewInt(100))
	statedb.SelfDestruct(addr)

	require.True(t, statedb.HasSelfDestructed(addr))
	require.True(t, statedb.GetBalance(addr).IsZero())
	// The account stays accessible until the end of the transaction.
	require.True(t, statedb.Exist(addr))

	statedb.Finalise()
	require.False(t, statedb.Exist(addr))
}

func TestSelfDestructRevert(t *testing.T) {
	statedb, _ := newTestState(t)
	addr := common.HexToAddress("0xcd")

	statedb.AddBalance(addr, uint256.NewInt(100))
	snap := statedb.Snapshot()
	statedb.SelfDestruct(addr)
	statedb.RevertToSnapshot(snap)

	require.False(t, statedb.HasSelfDestructed(addr))
	require.Equal(t, uint64(100), statedb.GetBalance(addr).Uint64())
}

func TestCommitAndReload(t *testing.T) {
	tdb := triedb.NewDatabase(memorydb.New(), nil)
	db := NewDatabase(tdb)
	statedb, err := New(types.EmptyRootHash, db)
	require.NoError(t, err)

	addr := common.HexToAddress("0xdd")
	code := []byte{0x60, 0x01, 0x60, 0x02}

	statedb.AddBalance(addr, uint256.NewInt(1234))
	statedb.SetNonce(addr, 9)
	statedb.SetCode(addr, code)
	statedb.SetState(addr, common.HexToHash("0x01"), common.HexToHash("0x42"))

	root, err := statedb.Commit()
	require.NoError(t, err)
	require.NoError(t, tdb.Commit())

	reloaded, err := New(root, db)
	require.NoError(t, err)
	require.Equal(t, uint64(1234), reloaded.GetBalance(addr).Uint64())
	require.Equal(t, uint64(9), reloaded.GetNonce(addr))
	require.Equal(t, code, reloaded.GetCode(addr))
	require.Equal(t, common.HexToHash("0x42"), reloaded.GetState(addr, common.HexToHash("0x01")))

	// Clearing the slot must drop it from the storage trie and restore the
	// previous account-level root determinism.
	reloaded.SetState(addr, common.HexToHash("0x01"), common.Hash{})
	rootCleared := reloaded.IntermediateRoot()

	fresh, err := New(types.EmptyRootHash, db)
	require.NoError(t, err)
	fresh.AddBalance(addr, uint256.NewInt(1234))
	fresh.SetNonce(addr, 9)
	fresh.SetCode(addr, code)
	require.Equal(t, rootCleared, fresh.IntermediateRoot())
}

func TestRefundCounter(t *testing.T) {
	statedb, _ := newTestState(t)
	statedb.AddRefund(15000)
	require.Equal(t, uint64(15000), statedb.GetRefund())

	snap := statedb.Snapshot()
	statedb.AddRefund(15000)
	statedb.RevertToSnapshot(snap)
	require.Equal(t, uint64(15000), statedb.GetRefund())

	// Finalise resets the counter for the next transaction.
	statedb.AddBalance(common.HexToAddress("0x01"), uint256.NewInt(1))
	statedb.Finalise()
	require.Equal(t, uint64(0), statedb.GetRefund())
}

func TestLogs(t *testing.T) {
	statedb, _ := newTestState(t)
	txHash := common.HexToHash("0xabcd")
	statedb.SetTxContext(txHash, 3)

	statedb.AddLog(&types.Log{Address: common.HexToAddress("0x01")})
	statedb.AddLog(&types.Log{Address: common.HexToAddress("0x02")})

	logs := statedb.GetLogs(txHash, 1, common.Hash{})
	require.Len(t, logs, 2)
	require.Equal(t, txHash, logs[0].TxHash)
	require.Equal(t, uint(3), logs[0].TxIndex)
	require.Equal(t, uint(0), logs[0].Index)
	require.Equal(t, uint(1), logs[1].Index)

	// Reverting drops the log added after the snapshot again.
	statedb.SetTxContext(common.HexToHash("0xfeed"), 4)
	snap := statedb.Snapshot()
	statedb.AddLog(&types.Log{Address: common.HexToAddress("0x03")})
	statedb.RevertToSnapshot(snap)
	require.Len(t, statedb.Logs(), 2)
}

func TestIntermediateRootDeterminism(t *testing.T) {
	build := func() common.Hash {
		statedb, _ := newTestState(t)
		for i := byte(1); i <= 10; i++ {
			addr := common.BytesToAddress([]byte{i})
			statedb.AddBalance(addr, uint256.NewInt(uint64(i)*1000))
			statedb.SetState(addr, common.BytesToHash([]byte{i}), common.BytesToHash([]byte{i, i}))
		}
		return statedb.IntermediateRoot()
	}
	require.Equal(t, build(), build())
}
