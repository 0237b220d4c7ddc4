// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Clock - source of the current time for expiry checks
type Clock func() time.Time

// VM - an execution context for validating transactions
//
// holds cached chain settings and counters, so it is not safe for
// concurrent use
type VM struct {
	clock       Clock
	environment *environment
	counters    Counters
}

// Counters - validation results seen by one VM
type Counters struct {
	Accepted uint64 `json:"accepted"`
	Rejected uint64 `json:"rejected"`
}

// NewVM - create an execution context, a nil clock means time.Now
func NewVM(clock Clock) *VM {
	if nil == clock {
		clock = time.Now
	}
	return &VM{
		clock: clock,
	}
}

// ValidateTransaction - check a transaction against the view without
// running it
//
// returns nil if the transaction may be executed, otherwise the
// reason for rejection
func (vm *VM) ValidateTransaction(txn *transaction.SignedTransaction, view ledger.StateView) (*StatusCode, error) {
	env, err := vm.loadEnvironment(view)
	if nil != err {
		return nil, err
	}

	code, _, err := prologue(env, txn, view, vm.clock())
	if nil != err {
		return nil, err
	}
	if nil != code {
		vm.counters.Rejected += 1
		return code, nil
	}
	vm.counters.Accepted += 1
	return nil, nil
}

// Counters - totals since creation
func (vm *VM) Counters() Counters {
	return vm.counters
}

// chain id and gas schedule do not change after genesis so they are
// only loaded once they exist
func (vm *VM) loadEnvironment(view ledger.StateView) (*environment, error) {
	if nil != vm.environment {
		return vm.environment, nil
	}
	env, err := loadEnvironment(view)
	if nil != err {
		return nil, err
	}
	vm.environment = env
	return env, nil
}
