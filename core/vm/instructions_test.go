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

package vm

import (
	"math/big"
	"testing"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/params"
	"github.com/holiman/uint256"
)

type twoOperandTest struct {
	x, y, expected string
}

func testTwoOperandOp(t *testing.T, tests []twoOperandTest, opFn executionFunc, name string) {
	var (
		evm         = NewEVM(BlockContext{BlockNumber: new(big.Int)}, TxContext{}, nil, params.TestChainConfig)
		stack       = newstack()
		pc          = uint64(0)
		interpreter = evm.interpreter
	)
	scope := &ScopeContext{Memory: nil, Stack: stack, Contract: nil}
	for i, test := range tests {
		x := new(uint256.Int).SetBytes(common.FromHex(test.x))
		y := new(uint256.Int).SetBytes(common.FromHex(test.y))
		expected := new(uint256.Int).SetBytes(common.FromHex(test.expected))
		stack.push(x)
		stack.push(y)
		opFn(&pc, interpreter, scope)
		if len(stack.data) != 1 {
			t.Errorf("Expected one item on stack after %v, got %d", name, len(stack.data))
		}
		actual := stack.pop()
		if actual.Cmp(expected) != 0 {
			t.Errorf("Testcase %v %d, %v(%x, %x): expected %x, got %x", name, i, name, x, y, expected, actual)
		}
	}
}

func TestOpAdd(t *testing.T) {
	testTwoOperandOp(t, []twoOperandTest{
		{"01", "01", "02"},
		{"00", "00", "00"},
		// wraparound modulo 2^256
		{"01", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "00"},
	}, opAdd, "add")
}

func TestOpSub(t *testing.T) {
	// Note: the stack is [.., x, y] and the op computes y - x after the
	// interpreter's operand ordering, i.e. top-of-stack minus the next.
	testTwoOperandOp(t, []twoOperandTest{
		{"01", "03", "02"},
		{"03", "01", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
	}, opSub, "sub")
}

func TestOpDivByZero(t *testing.T) {
	// Division and modulo by zero yield zero, not a trap.
	testTwoOperandOp(t, []twoOperandTest{
		{"00", "07", "00"},
		{"02", "07", "03"},
	}, opDiv, "div")
	testTwoOperandOp(t, []twoOperandTest{
		{"00", "07", "00"},
		{"02", "07", "01"},
	}, opMod, "mod")
}

func TestOpSdiv(t *testing.T) {
	minusOne := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	minInt256 := "8000000000000000000000000000000000000000000000000000000000000000"
	testTwoOperandOp(t, []twoOperandTest{
		// -4 / 2 == -2
		{"02", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
		// MinInt256 / -1 overflows back to MinInt256 (two's complement)
		{minusOne, minInt256, minInt256},
		// anything / 0 == 0
		{"00", minusOne, "00"},
	}, opSdiv, "sdiv")
}

func TestOpByte(t *testing.T) {
	testTwoOperandOp(t, []twoOperandTest{
		// BYTE(31, x) is the low byte
		{"102030", "1f", "30"},
		{"102030", "1e", "20"},
		// out of range yields zero
		{"102030", "20", "00"},
	}, opByte, "byte")
}

func TestOpSignExtend(t *testing.T) {
	testTwoOperandOp(t, []twoOperandTest{
		{"ff", "00", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{"7f", "00", "7f"},
		{"ff", "01", "ff"},
	}, opSignExtend, "signextend")
}

func TestOpIszero(t *testing.T) {
	var (
		evm         = NewEVM(BlockContext{BlockNumber: new(big.Int)}, TxContext{}, nil, params.TestChainConfig)
		stack       = newstack()
		pc          = uint64(0)
		interpreter = evm.interpreter
	)
	scope := &ScopeContext{Stack: stack}
	stack.push(new(uint256.Int))
	opIszero(&pc, interpreter, scope)
	if v := stack.pop(); !v.Eq(uint256.NewInt(1)) {
		t.Errorf("ISZERO(0) = %v, want 1", v)
	}
	stack.push(uint256.NewInt(55))
	opIszero(&pc, interpreter, scope)
	if v := stack.pop(); !v.IsZero() {
		t.Errorf("ISZERO(55) = %v, want 0", v)
	}
}

func TestOpMstorePop(t *testing.T) {
	var (
		evm         = NewEVM(BlockContext{BlockNumber: new(big.Int)}, TxContext{}, nil, params.TestChainConfig)
		stack       = newstack()
		mem         = NewMemory()
		pc          = uint64(0)
		interpreter = evm.interpreter
	)
	scope := &ScopeContext{Memory: mem, Stack: stack}
	mem.Resize(64)
	stack.push(new(uint256.Int).SetBytes(common.FromHex("deadbeef")))
	stack.push(uint256.NewInt(0))
	opMstore(&pc, interpreter, scope)
	got := common.Bytes2Hex(mem.GetCopy(0, 32))
	want := "00000000000000000000000000000000000000000000000000000000deadbeef"
	if got != want {
		t.Fatalf("MSTORE mismatch: got %v, want %v", got, want)
	}
}

func TestMemoryGasCost(t *testing.T) {
	tests := []struct {
		size     uint64
		cost     uint64
		overflow bool
	}{
		{0x00, 0, false},
		{0x20, 3, false},          // one word: 3*1 + 1*1/512
		{0x40, 6, false},          // two words
		{0x400, 98, false},        // 32 words: 3*32 + 32*32/512 = 96+2
		{0x1FFFFFFFE0, 36028809887088637, false},
		{0x1FFFFFFFE1, 0, true},
	}
	for i, tt := range tests {
		mem := NewMemory()
		cost, err := memoryGasCost(mem, tt.size)
		if (err == ErrGasUintOverflow) != tt.overflow {
			t.Errorf("test %d: overflow mismatch: have %v, want %v", i, err == ErrGasUintOverflow, tt.overflow)
		}
		if err == nil && cost != tt.cost {
			t.Errorf("test %d: gas cost mismatch: have %v, want %v", i, cost, tt.cost)
		}
	}
}

// TestMemoryHighWaterMark checks that only the expansion beyond the previous
// high-water mark is charged.
func TestMemoryHighWaterMark(t *testing.T) {
	mem := NewMemory()
	first, err := memoryGasCost(mem, 64)
	if err != nil {
		t.Fatal(err)
	}
	mem.Resize(64)
	if first != 6 {
		t.Fatalf("first expansion cost %d, want 6", first)
	}
	again, err := memoryGasCost(mem, 64)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Fatalf("re-expansion to same size cost %d, want 0", again)
	}
	grow, err := memoryGasCost(mem, 96)
	if err != nil {
		t.Fatal(err)
	}
	if grow != 3 {
		t.Fatalf("incremental expansion cost %d, want 3", grow)
	}
}

func TestJumpDestAnalysis(t *testing.T) {
	tests := []struct {
		code  []byte
		exp   byte
		which int
	}{
		{[]byte{byte(PUSH1), 0x01, 0x01, 0x01}, 0b0000_0010, 0},
		{[]byte{byte(PUSH1), byte(PUSH1), byte(PUSH1), byte(PUSH1)}, 0b0000_1010, 0},
		{[]byte{0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1)}, 0b0101_0100, 0},
		{[]byte{byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), 0x01, 0x01, 0x01}, 0b1111_1110, 0},
		{[]byte{byte(PUSH8), 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}, 0b0000_0001, 1},
		{[]byte{0x01, 0x01, 0x01, 0x01, 0x01, byte(PUSH2), byte(PUSH2), byte(PUSH2), 0x01, 0x01, 0x01}, 0b1100_0000, 0},
		{[]byte{0x01, 0x01, 0x01, 0x01, 0x01, byte(PUSH2), 0x01, 0x01, 0x01, 0x01, 0x01}, 0b0000_0000, 1},
		{[]byte{byte(PUSH3), 0x01, 0x01, 0x01, byte(PUSH1), 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}, 0b0010_1110, 0},
		{[]byte{byte(PUSH32)}, 0b1111_1110, 0},
		{[]byte{byte(PUSH32)}, 0b1111_1111, 1},
		{[]byte{byte(PUSH32)}, 0b1111_1111, 2},
		{[]byte{byte(PUSH32)}, 0b1111_1111, 3},
		{[]byte{byte(PUSH32)}, 0b0000_0001, 4},
	}
	for i, test := range tests {
		ret := codeBitmap(test.code)
		if ret[test.which] != test.exp {
			t.Fatalf("test %d: expected %x, got %02x", i, test.exp, ret[test.which])
		}
	}
}

func TestValidJumpdest(t *testing.T) {
	// JUMPDEST inside PUSH data is not a valid target.
	code := []byte{byte(PUSH2), byte(JUMPDEST), 0x00, byte(JUMPDEST), byte(STOP)}
	contract := NewContract(AccountRef(common.Address{}), AccountRef(common.Address{}), new(uint256.Int), 0)
	contract.Code = code

	if contract.validJumpdest(uint256.NewInt(1)) {
		t.Error("jumpdest inside push data accepted")
	}
	if !contract.validJumpdest(uint256.NewInt(3)) {
		t.Error("real jumpdest rejected")
	}
	if contract.validJumpdest(uint256.NewInt(4)) {
		t.Error("non-jumpdest opcode accepted")
	}
	if contract.validJumpdest(uint256.NewInt(100)) {
		t.Error("out of range jumpdest accepted")
	}
}
