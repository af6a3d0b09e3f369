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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emberlabs/ember/core"
	"github.com/emberlabs/ember/core/types"
	"github.com/emberlabs/ember/ethdb/leveldb"
	"github.com/emberlabs/ember/log"
	"github.com/emberlabs/ember/rlp"
	"github.com/gofrs/flock"
	"github.com/urfave/cli/v2"
)

var (
	initCommand = &cli.Command{
		Action:    initGenesis,
		Name:      "init",
		Usage:     "Bootstrap and initialize a new genesis block",
		ArgsUsage: "",
		Flags:     []cli.Flag{dataDirFlag, configFlag},
		Description: `
The init command initializes a new genesis block and chain configuration in
the data directory, read from the TOML file given with --config. It expects
the data directory to be empty or already initialized with the same genesis.`,
	}
	importCommand = &cli.Command{
		Action:    importChain,
		Name:      "import",
		Usage:     "Import a blockchain file",
		ArgsUsage: "<filename> (<filename 2> ... <filename N>)",
		Flags:     []cli.Flag{dataDirFlag, configFlag},
		Description: `
The import command imports blocks from RLP-encoded files into the chain,
validating every block against its parent before it is accepted.`,
	}
)

// importBatchSize is the maximum number of blocks handed to the chain in one
// InsertChain call during import.
const importBatchSize = 2500

// lockDataDir takes the exclusive file lock guarding the data directory, so
// two ember instances cannot mutate the same chain concurrently.
func lockDataDir(datadir string) (*flock.Flock, error) {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(datadir, "LOCK"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("datadir %q is used by another process", datadir)
	}
	return lock, nil
}

// openChain opens the chain database in the data directory and assembles a
// BlockChain around it using the genesis from --config.
func openChain(ctx *cli.Context) (*core.BlockChain, io.Closer, error) {
	if !ctx.IsSet(configFlag.Name) {
		return nil, nil, errors.New("no chain configuration given, use --config")
	}
	genesis, err := loadGenesis(ctx.String(configFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	datadir := ctx.String(dataDirFlag.Name)
	lock, err := lockDataDir(datadir)
	if err != nil {
		return nil, nil, err
	}
	db, err := leveldb.New(filepath.Join(datadir, "chaindata"), 128, 128, false)
	if err != nil {
		lock.Unlock()
		return nil, nil, err
	}
	chain, err := core.NewBlockChain(db, genesis)
	if err != nil {
		db.Close()
		lock.Unlock()
		return nil, nil, err
	}
	closer := closerFunc(func() error {
		err := db.Close()
		lock.Unlock()
		return err
	})
	return chain, closer, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func initGenesis(ctx *cli.Context) error {
	chain, closer, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	genesis := chain.GetBlockByNumber(0)
	log.Info("Successfully wrote genesis state", "hash", genesis.Hash())
	return nil
}

func importChain(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return errors.New("this command requires an argument")
	}
	chain, closer, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, file := range ctx.Args().Slice() {
		if err := importBlockFile(chain, file); err != nil {
			return err
		}
	}
	head := chain.CurrentBlock()
	log.Info("Import done", "head", head.NumberU64(), "hash", head.Hash())
	return nil
}

// importBlockFile streams RLP-encoded blocks from the given file into the
// chain in batches.
func importBlockFile(chain *core.BlockChain, file string) error {
	fh, err := os.Open(file)
	if err != nil {
		return err
	}
	defer fh.Close()

	log.Info("Importing blockchain file", "file", file)
	stream := rlp.NewStream(fh, 0)
	for batchNum := 0; ; batchNum++ {
		// Load a batch of RLP blocks.
		blocks := make([]*types.Block, 0, importBatchSize)
		for len(blocks) < importBatchSize {
			block := new(types.Block)
			if err := stream.Decode(block); err == io.EOF {
				break
			} else if err != nil {
				return fmt.Errorf("at block %d: %v", batchNum*importBatchSize+len(blocks), err)
			}
			// Importing the genesis block is a no-op, it is already in place.
			if block.NumberU64() == 0 {
				continue
			}
			blocks = append(blocks, block)
		}
		if len(blocks) == 0 {
			break
		}
		if _, err := chain.InsertChain(blocks); err != nil {
			return err
		}
	}
	return nil
}
