// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Validator - checks a transaction against the current state
type Validator interface {
	Validate(*transaction.SignedTransaction) (*engine.StatusCode, error)
}

// Executor - runs a block of transactions against a view
type Executor interface {
	ExecuteBlock(context.Context, []*transaction.SignedTransaction, ledger.StateView) ([]engine.TransactionOutput, error)
}

// Committer - makes a write set durable
type Committer interface {
	Commit(*ledger.WriteSet) error
}
