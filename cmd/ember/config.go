// Copyright 2025 The ember Authors
// This file is part of ember.
//
// ember is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ember is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ember. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/emberlabs/ember/common"
	"github.com/emberlabs/ember/common/hexutil"
	"github.com/emberlabs/ember/core"
	"github.com/emberlabs/ember/params"
	"github.com/naoina/toml"
)

// genesisSpec is the TOML-facing form of a genesis specification. Account
// addresses are carried as hex strings so the file stays hand editable.
type genesisSpec struct {
	Config     *params.ChainConfig
	Timestamp  uint64
	ExtraData  hexutil.Bytes
	GasLimit   uint64
	Difficulty *big.Int
	Coinbase   common.Address
	Alloc      map[string]genesisAccount
}

type genesisAccount struct {
	Code    hexutil.Bytes
	Balance *big.Int
	Nonce   uint64
	Storage map[string]string
}

// loadGenesis reads a TOML genesis specification from the given file.
func loadGenesis(file string) (*core.Genesis, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var spec genesisSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid genesis file %q: %v", file, err)
	}
	if spec.Config == nil {
		return nil, fmt.Errorf("genesis file %q carries no chain configuration", file)
	}
	genesis := &core.Genesis{
		Config:     spec.Config,
		Timestamp:  spec.Timestamp,
		ExtraData:  spec.ExtraData,
		GasLimit:   spec.GasLimit,
		Difficulty: spec.Difficulty,
		Coinbase:   spec.Coinbase,
		Alloc:      make(core.GenesisAlloc, len(spec.Alloc)),
	}
	for addr, account := range spec.Alloc {
		acct := core.GenesisAccount{
			Code:    account.Code,
			Balance: account.Balance,
			Nonce:   account.Nonce,
		}
		if account.Balance == nil {
			acct.Balance = new(big.Int)
		}
		if len(account.Storage) > 0 {
			acct.Storage = make(map[common.Hash]common.Hash, len(account.Storage))
			for key, value := range account.Storage {
				acct.Storage[common.HexToHash(key)] = common.HexToHash(value)
			}
		}
		genesis.Alloc[common.HexToAddress(addr)] = acct
	}
	return genesis, nil
}
