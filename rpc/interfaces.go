// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Ledger - read access to the current state
type Ledger interface {
	ChainResource() (*engine.ChainIDResource, error)
	Account(ledger.Address) (*engine.AccountState, error)
}

// Submitter - the transaction pipeline
type Submitter interface {
	Submit(context.Context, *transaction.SignedTransaction) (transaction.Hash, error)
	Simulate(context.Context, *transaction.SignedTransaction) (*engine.TransactionOutput, error)
}

// Statistics - validation totals
type Statistics interface {
	Counters() engine.Counters
}
