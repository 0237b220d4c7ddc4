// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/chain"
)

type chainIDReply struct {
	ChainID uint8  `json:"chain_id"`
	Name    string `json:"name,omitempty"`
}

func runChainID(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := m.client.ChainID()
	if nil != err {
		return err
	}

	return printJson(m.w, chainIDReply{
		ChainID: id,
		Name:    chain.Name(id),
	})
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, err := checkAccount(c.String("address"), c.String("seed"))
	if nil != err {
		return err
	}

	state, err := m.client.Account(address)
	if nil != err {
		return err
	}

	return printJson(m.w, state)
}
