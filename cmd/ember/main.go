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

// ember is the command line interface to the chain core: it can initialise
// a data directory from a genesis specification and import RLP block files
// against it.
package main

import (
	"fmt"
	"os"

	"github.com/emberlabs/ember/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the databases",
		Value: "ember-data",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML chain configuration file",
	}
)

var app = &cli.App{
	Name:   "ember",
	Usage:  "the ember command line interface",
	Flags:  []cli.Flag{dataDirFlag, verbosityFlag},
	Before: setupLogging,
	Commands: []*cli.Command{
		initCommand,
		importCommand,
	},
}

func setupLogging(ctx *cli.Context) error {
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), useColor)
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
