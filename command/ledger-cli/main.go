// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/command/ledger-cli/rpccalls"
)

const defaultConnect = "http://127.0.0.1:8080"

type metadata struct {
	client  *rpccalls.Client
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "keys and transfers for a ledgerd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: defaultConnect,
			Usage: " ledgerd base `URL`",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: " accept self-signed server certificates",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new key, print its seed and address",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "address",
			Usage:     "display the address of a seed",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "*base58 key `SEED`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "chain-id",
			Usage:     "display the chain id of the server",
			ArgsUsage: " ",
			Action:    runChainID,
		},
		{
			Name:      "account",
			Usage:     "display the balance and sequence number of an account",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "+account `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+base58 key `SEED` of the account",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "transfer",
			Usage:     "sign and submit a coin transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "*base58 key `SEED` of the sender",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*receiving `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*coins to send `AMOUNT`",
				},
				cli.Int64Flag{
					Name:  "sequence, n",
					Value: -1,
					Usage: " sequence `NUMBER` default is read from the server",
				},
				cli.Uint64Flag{
					Name:  "max-gas, g",
					Value: defaultMaxGas,
					Usage: " maximum gas `UNITS`",
				},
				cli.Uint64Flag{
					Name:  "gas-price, p",
					Value: defaultGasPrice,
					Usage: " gas unit `PRICE`",
				},
				cli.DurationFlag{
					Name:  "expiry, e",
					Value: defaultExpiry,
					Usage: " transaction lifetime `DURATION`",
				},
				cli.BoolFlag{
					Name:  "dry-run, d",
					Usage: " simulate only, nothing is committed",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "version",
			Usage:     "display ledger-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		e := c.App.ErrWriter
		verbose := c.GlobalBool("verbose")
		connect := c.GlobalString("connect")

		if verbose {
			fmt.Fprintf(e, "connect: %q\n", connect)
		}

		c.App.Metadata = map[string]interface{}{
			"config": &metadata{
				client:  rpccalls.NewClient(connect, c.GlobalBool("insecure"), verbose, e),
				verbose: verbose,
				e:       e,
				w:       c.App.Writer,
			},
		}
		return nil
	}

	return app
}
