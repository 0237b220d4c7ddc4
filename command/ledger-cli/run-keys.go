// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/ledger"
)

type keyReply struct {
	Seed      string         `json:"seed,omitempty"`
	PublicKey string         `json:"public_key"`
	Address   ledger.Address `json:"address"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewPrivateKey()
	if nil != err {
		return err
	}

	return printJson(m.w, keyReply{
		Seed:      key.Base58Seed(),
		PublicKey: hex.EncodeToString(key.PublicKey()),
		Address:   key.Address(),
	})
}

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkSeed(c.String("seed"))
	if nil != err {
		return err
	}

	return printJson(m.w, keyReply{
		PublicKey: hex.EncodeToString(key.PublicKey()),
		Address:   key.Address(),
	})
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
