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

package runtime

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/core/vm"
)

func TestDefaults(t *testing.T) {
	cfg := new(Config)
	setDefaults(cfg)

	if cfg.Difficulty == nil {
		t.Error("expected difficulty to be non nil")
	}
	if cfg.GasLimit == 0 {
		t.Error("didn't expect gaslimit to be zero")
	}
	if cfg.GasPrice == nil {
		t.Error("expected time to be non nil")
	}
	if cfg.Value == nil {
		t.Error("expected time to be non nil")
	}
	if cfg.GetHashFn == nil {
		t.Error("expected time to be non nil")
	}
	if cfg.BlockNumber == nil {
		t.Error("expected block number to be non nil")
	}
}

func TestExecute(t *testing.T) {
	ret, _, err := Execute([]byte{
		byte(vm.PUSH1), 10,
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}, nil, nil)
	if err != nil {
		t.Fatal("didn't expect error", err)
	}

	num := new(big.Int).SetBytes(ret)
	if num.Cmp(big.NewInt(10)) != 0 {
		t.Error("Expected 10, got", num)
	}
}

// TestCreateAddContract deploys init code computing 5+3 and returning the
// 32-byte result as the contract body; the installed contract must return
// the big-endian integer 8 when called.
func TestCreateAddContract(t *testing.T) {
	initCode := []byte{
		byte(vm.PUSH1), 3,
		byte(vm.PUSH1), 5,
		byte(vm.ADD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32, // size
		byte(vm.PUSH1), 0, // offset
		byte(vm.RETURN),
	}
	cfg := new(Config)
	setDefaults(cfg)
	cfg.GasLimit = 1000000

	deployed, addr, _, err := Create(initCode, cfg)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	want := common.LeftPadBytes([]byte{8}, 32)
	if !bytes.Equal(deployed, want) {
		t.Fatalf("deployed code mismatch: got %x, want %x", deployed, want)
	}
	if !bytes.Equal(cfg.State.GetCode(addr), want) {
		t.Fatalf("installed code mismatch: got %x, want %x", cfg.State.GetCode(addr), want)
	}
	// Calling the installed contract executes its body; the body is a data
	// blob of mostly STOPs, so it must halt normally.
	if _, _, err := Call(addr, nil, cfg); err != nil {
		t.Fatalf("call failed: %v", err)
	}
}

func TestOutOfGas(t *testing.T) {
	cfg := new(Config)
	setDefaults(cfg)
	cfg.GasLimit = 5 // enough for a couple of PUSHes only

	_, _, err := Execute([]byte{
		byte(vm.PUSH1), 1,
		byte(vm.PUSH1), 2,
		byte(vm.ADD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
	}, nil, cfg)
	if !errors.Is(err, vm.ErrOutOfGas) {
		t.Fatalf("expected out of gas, got %v", err)
	}
}

func TestBadJump(t *testing.T) {
	_, _, err := Execute([]byte{
		byte(vm.PUSH1), 9,
		byte(vm.JUMP), // jumps into the data of a PUSH
		byte(vm.PUSH32), 0x5b, 0x5b, 0x5b, 0x5b, 0x5b, 0x5b,
	}, nil, nil)
	if !errors.Is(err, vm.ErrInvalidJump) {
		t.Fatalf("expected invalid jump, got %v", err)
	}
}

func TestInvalidOpcode(t *testing.T) {
	_, _, err := Execute([]byte{0xfe}, nil, nil)
	var invalid *vm.ErrInvalidOpCode
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid opcode error, got %v", err)
	}
}

func TestStackUnderflow(t *testing.T) {
	_, _, err := Execute([]byte{byte(vm.ADD)}, nil, nil)
	var underflow *vm.ErrStackUnderflow
	if !errors.As(err, &underflow) {
		t.Fatalf("expected stack underflow, got %v", err)
	}
}

func TestSstoreRefund(t *testing.T) {
	cfg := new(Config)
	setDefaults(cfg)
	cfg.GasLimit = 1000000

	// Store a value, then clear it: clearing accrues the 15000 refund.
	_, _, err := Execute([]byte{
		byte(vm.PUSH1), 1, // value
		byte(vm.PUSH1), 0, // slot
		byte(vm.SSTORE),
		byte(vm.PUSH1), 0, // value
		byte(vm.PUSH1), 0, // slot
		byte(vm.SSTORE),
	}, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if refund := cfg.State.GetRefund(); refund != 15000 {
		t.Fatalf("refund counter is %d, want 15000", refund)
	}
}
