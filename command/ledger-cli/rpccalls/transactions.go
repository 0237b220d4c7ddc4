// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// SimulateReply - outcome of a dry run
type SimulateReply struct {
	Status       string `json:"status"`
	GasUsed      uint64 `json:"gas_used"`
	WriteSetSize int    `json:"write_set_size"`
}

// ChainID - the chain id the server was created with
func (c *Client) ChainID() (uint8, error) {
	var id uint8
	err := c.get("/rpc/v1/transactions/chain_id", &id)
	return id, err
}

// Account - balance and sequence number of an address
func (c *Client) Account(address ledger.Address) (*engine.AccountState, error) {
	var state engine.AccountState
	if err := c.get("/rpc/v1/accounts/"+address.String(), &state); nil != err {
		return nil, err
	}
	return &state, nil
}

// Submit - send a signed transaction, returns its hash once committed
func (c *Client) Submit(txn *transaction.SignedTransaction) (transaction.Hash, error) {
	var hash transaction.Hash
	err := c.post("/rpc/v1/transactions/submit", transaction.Envelope{Move: txn}, &hash)
	return hash, err
}

// Simulate - run a signed transaction without committing it
func (c *Client) Simulate(txn *transaction.SignedTransaction) (*SimulateReply, error) {
	var reply SimulateReply
	if err := c.post("/rpc/v1/transactions/simulate", transaction.Envelope{Move: txn}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
