// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/transaction"
)

const (
	defaultMaxGas   = 1000
	defaultGasPrice = 100
	defaultExpiry   = 10 * time.Minute
)

type transferReply struct {
	Hash           transaction.Hash `json:"hash"`
	SequenceNumber uint64           `json:"sequence_number"`
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkSeed(c.String("seed"))
	if nil != err {
		return err
	}

	to, err := checkAddress(c.String("to"))
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount must be greater than zero")
	}

	chainID, err := m.client.ChainID()
	if nil != err {
		return err
	}

	sequence := c.Int64("sequence")
	if sequence < 0 {
		state, err := m.client.Account(key.Address())
		if nil != err {
			return err
		}
		sequence = int64(state.SequenceNumber)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", key.Address())
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "sequence: %d\n", sequence)
	}

	txn, err := transaction.Sign(transaction.RawTransaction{
		Sender:                  key.Address(),
		SequenceNumber:          uint64(sequence),
		Payload:                 transaction.Transfer{To: to, Amount: amount},
		MaxGasAmount:            c.Uint64("max-gas"),
		GasUnitPrice:            c.Uint64("gas-price"),
		ExpirationTimestampSecs: uint64(time.Now().Add(c.Duration("expiry")).Unix()),
		ChainID:                 chainID,
	}, key)
	if nil != err {
		return err
	}

	if c.Bool("dry-run") {
		reply, err := m.client.Simulate(txn)
		if nil != err {
			return err
		}
		return printJson(m.w, reply)
	}

	hash, err := m.client.Submit(txn)
	if nil != err {
		return err
	}

	return printJson(m.w, transferReply{
		Hash:           hash,
		SequenceNumber: uint64(sequence),
	})
}
