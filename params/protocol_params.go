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

package params

import "math/big"

const (
	GasLimitBoundDivisor uint64 = 1024    // The bound divisor of the gas limit, used in update calculations.
	MinGasLimit          uint64 = 125000  // Minimum the gas limit may ever be.
	GenesisGasLimit      uint64 = 3141592 // Gas limit of the Genesis block.

	MaximumExtraDataSize uint64 = 32 // Maximum size extra data may be after Genesis.

	ExpByteGas   uint64 = 10 // Times ceil(log256(exponent)) for the EXP instruction.
	SloadGas     uint64 = 50 // Once per SLOAD operation.
	CallValueTransferGas  uint64 = 9000  // Paid for CALL when the value transfer is non-zero.
	CallNewAccountGas     uint64 = 25000 // Paid for CALL when the destination address didn't exist prior.
	TxGas                 uint64 = 21000 // Per transaction not creating a contract.
	TxGasContractCreation uint64 = 53000 // Per transaction that creates a contract.
	TxDataZeroGas         uint64 = 4     // Per byte of data attached to a transaction that equals zero.
	TxDataNonZeroGas      uint64 = 68    // Per byte of data attached to a transaction that is not equal to zero.
	QuadCoeffDiv          uint64 = 512   // Divisor for the quadratic particle of the memory cost equation.
	SstoreSetGas          uint64 = 20000 // Once per SSTORE operation when the zeroness changes from zero.
	SstoreResetGas        uint64 = 5000  // Once per SSTORE operation when the zeroness doesn't change.
	SstoreClearGas        uint64 = 5000  // Once per SSTORE operation when the zeroness changes to zero.
	SstoreRefundGas       uint64 = 15000 // Once per SSTORE operation when the zeroness changes to zero.
	JumpdestGas           uint64 = 1     // Once per JUMPDEST operation.
	CreateDataGas         uint64 = 200   // Per byte of code attached to a contract after creation.
	CallGas               uint64 = 40    // Once per CALL operation & message call transaction.
	CallStipend           uint64 = 2300  // Free gas given at beginning of call.
	CallCreateDepth       uint64 = 1024  // Maximum depth of call/create stack.

	ExpGas uint64 = 10 // Once per EXP instruction

	Sha3Gas     uint64 = 30 // Once per SHA3 operation.
	Sha3WordGas uint64 = 6  // Once per word of the SHA3 operation's data.

	LogGas      uint64 = 375 // Per LOG* operation.
	LogDataGas  uint64 = 8   // Per byte in a LOG* operation's data.
	LogTopicGas uint64 = 375 // Multiplied by the * of the LOG*, per LOG transaction.

	CopyGas uint64 = 3 // Multiplied by the number of 32-byte words copied.

	BalanceGas      uint64 = 20 // Cost of BALANCE.
	ExtcodeSizeGas  uint64 = 20 // Cost of EXTCODESIZE.
	ExtcodeCopyBase uint64 = 20 // Base cost of EXTCODECOPY.

	CreateGas        uint64 = 32000 // Once per CREATE operation & contract-creation transaction.
	SelfdestructRefundGas uint64 = 24000 // Refunded following a selfdestruct operation.
	MemoryGas        uint64 = 3     // Times the address of the (highest referenced byte in memory + 1).

	StackLimit uint64 = 1024 // Maximum size of VM stack allowed.

	// Precompiled contract gas prices

	EcrecoverGas      uint64 = 3000 // Elliptic curve sender recovery gas price
	Sha256BaseGas     uint64 = 60   // Base price for a SHA256 operation
	Sha256PerWordGas  uint64 = 12   // Per-word price for a SHA256 operation
	Ripemd160BaseGas  uint64 = 600  // Base price for a RIPEMD160 operation
	Ripemd160PerWordGas uint64 = 120 // Per-word price for a RIPEMD160 operation
	IdentityBaseGas   uint64 = 15   // Base price for a data copy operation
	IdentityPerWordGas uint64 = 3   // Per-work price for a data copy operation

	// Difficulty adjustment parameters.

	InitialDifficulty      int64 = 131072 // Difficulty of the Genesis block, absent a chain-config override.
	MinimumDifficulty      int64 = 131072 // The minimum that the difficulty may ever be.
	DifficultyBoundDivisor int64 = 2048   // The bound divisor of the difficulty, used in the update calculations.
	DurationLimit          int64 = 13     // The decision boundary on the blocktime duration used to determine whether difficulty should go up or not.

	// BlockHashHistory is the number of ancestor hashes reachable via BLOCKHASH.
	BlockHashHistory uint64 = 256
)

// FrontierBlockReward is the block reward in wei for successfully mining a
// block, in both the Frontier and Homestead eras.
var FrontierBlockReward = big.NewInt(5e+18)
