// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

func TestValidateAccepts(t *testing.T) {
	world, key := newTestWorld(t)
	vm := engine.NewVM(testClock)

	code, err := vm.ValidateTransaction(newTransfer(t, key, 0), world)
	assert.Nil(t, err, "error")
	assert.Nil(t, code, "rejected: %v", code)
	assert.Equal(t, engine.Counters{Accepted: 1}, vm.Counters(), "counters")
}

func TestValidateRejects(t *testing.T) {
	world, key := newTestWorld(t)
	stranger := account.DeterministicPrivateKey("stranger", 0)

	// alice after one executed transaction
	advance := ledger.NewWriteSet()
	engine.WriteResource(advance, key.Address(), &engine.AccountResource{AuthenticationKey: key.Address(), SequenceNumber: 1})
	advanced := ledger.NewOverlay(world)
	advanced.Apply(advance)

	tamper := newTransfer(t, key, 0)
	tamper.Raw.GasUnitPrice += 1

	// signed by a key that does not own the sending account
	wrongKey := newTransfer(t, stranger, 0, func(r *transaction.RawTransaction) {
		r.Sender = key.Address()
	})

	cases := []struct {
		name string
		view ledger.StateView
		txn  *transaction.SignedTransaction
		code engine.StatusCode
	}{
		{"signature", world, tamper, engine.StatusInvalidSignature},
		{"too old", advanced, newTransfer(t, key, 0), engine.StatusSequenceNumberTooOld},
		{"too new", advanced, newTransfer(t, key, 5), engine.StatusSequenceNumberTooNew},
		{"chain", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.ChainID = 1 }), engine.StatusBadChainID},
		{"expired", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.ExpirationTimestampSecs = 1 }), engine.StatusTransactionExpired},
		{"no account", world, newTransfer(t, stranger, 0), engine.StatusSendingAccountDoesNotExist},
		{"auth key", world, wrongKey, engine.StatusInvalidAuthKey},
		{"gas above bound", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.MaxGasAmount = 2000001 }), engine.StatusMaxGasUnitsExceedsBound},
		{"gas below minimum", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.MaxGasAmount = 5 }), engine.StatusMaxGasUnitsBelowMinimum},
		{"price low", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.GasUnitPrice = 99 }), engine.StatusGasUnitPriceBelowMinimum},
		{"price high", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.GasUnitPrice = 10000000001 }), engine.StatusGasUnitPriceAboveMaximum},
		{"fee", world, newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.MaxGasAmount = 2000000; r.GasUnitPrice = 1000 }), engine.StatusInsufficientBalanceForFee},
	}

	vm := engine.NewVM(testClock)
	for _, c := range cases {
		code, err := vm.ValidateTransaction(c.txn, c.view)
		assert.Nil(t, err, "%s: error", c.name)
		if assert.NotNil(t, code, "%s: accepted", c.name) {
			assert.Equal(t, c.code, *code, "%s: status: %s", c.name, code)
		}
	}
	assert.Equal(t, uint64(len(cases)), vm.Counters().Rejected, "rejected count")
}

func TestValidateWithoutGenesis(t *testing.T) {
	_, key := newTestWorld(t)
	vm := engine.NewVM(testClock)

	_, err := vm.ValidateTransaction(newTransfer(t, key, 0), ledger.NewOverlay(nil))
	assert.Equal(t, fault.ErrChainResourceMissing, err, "missing chain resource")
}
