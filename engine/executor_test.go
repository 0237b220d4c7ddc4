// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

func accountState(t *testing.T, view ledger.StateView, address ledger.Address) *engine.AccountState {
	state, err := engine.ReadAccountState(view, address)
	assert.Nil(t, err, "read account")
	return state
}

func TestExecuteTransfer(t *testing.T) {
	world, key := newTestWorld(t)
	bob := ledger.MustAddress("0xb0b")
	gas := engine.DefaultGasSchedule()

	executor := engine.NewBlockExecutor(2, testClock)
	outputs, err := executor.ExecuteBlock(context.Background(), []*transaction.SignedTransaction{newTransfer(t, key, 0)}, world)
	assert.Nil(t, err, "execute")
	assert.Equal(t, 1, len(outputs), "outputs")

	output := outputs[0]
	assert.Equal(t, engine.Keep(engine.StatusExecuted), output.Status, "status")
	assert.Equal(t, gas.TransferGasUnits, output.GasUsed, "gas")

	assert.Nil(t, accountState(t, world, bob), "view modified by execution")

	world.Apply(output.WriteSet)
	alice := accountState(t, world, key.Address())
	assert.Equal(t, uint64(1), alice.SequenceNumber, "sequence")
	assert.Equal(t, uint64(testBalance-1000-gas.TransferGasUnits*100), alice.Balance, "sender balance")

	recipient := accountState(t, world, bob)
	if assert.NotNil(t, recipient, "recipient not created") {
		assert.Equal(t, uint64(1000), recipient.Balance, "recipient balance")
		assert.Equal(t, uint64(0), recipient.SequenceNumber, "recipient sequence")
	}
}

func TestExecuteBlockSequential(t *testing.T) {
	world, key := newTestWorld(t)
	executor := engine.NewBlockExecutor(0, testClock)

	txns := []*transaction.SignedTransaction{
		newTransfer(t, key, 0),
		newTransfer(t, key, 1),
		newTransfer(t, key, 1),
		newTransfer(t, key, 3),
	}
	outputs, err := executor.ExecuteBlock(context.Background(), txns, world)
	assert.Nil(t, err, "execute")

	assert.Equal(t, engine.Keep(engine.StatusExecuted), outputs[0].Status, "first")
	assert.Equal(t, engine.Keep(engine.StatusExecuted), outputs[1].Status, "second sees first")
	assert.Equal(t, engine.Discard(engine.StatusSequenceNumberTooOld), outputs[2].Status, "replay")
	assert.Equal(t, engine.Discard(engine.StatusSequenceNumberTooNew), outputs[3].Status, "gap")
	assert.Equal(t, 0, outputs[2].WriteSet.Len(), "discard has no writes")
}

func TestExecuteInsufficientForTransfer(t *testing.T) {
	world, key := newTestWorld(t)
	executor := engine.NewBlockExecutor(1, testClock)

	txn := newTransfer(t, key, 0, func(r *transaction.RawTransaction) {
		r.Payload = transaction.Transfer{To: ledger.MustAddress("0xb0b"), Amount: testBalance}
	})
	outputs, err := executor.ExecuteBlock(context.Background(), []*transaction.SignedTransaction{txn}, world)
	assert.Nil(t, err, "execute")
	assert.Equal(t, engine.Keep(engine.StatusInsufficientBalanceOnTransfer), outputs[0].Status, "status")

	world.Apply(outputs[0].WriteSet)
	alice := accountState(t, world, key.Address())
	assert.Equal(t, uint64(1), alice.SequenceNumber, "sequence still advances")
	assert.Equal(t, uint64(testBalance-9*100), alice.Balance, "fee still charged")
	assert.Nil(t, accountState(t, world, ledger.MustAddress("0xb0b")), "recipient created")
}

func TestExecuteOutOfGas(t *testing.T) {
	world, key := newTestWorld(t)
	executor := engine.NewBlockExecutor(1, testClock)

	txn := newTransfer(t, key, 0, func(r *transaction.RawTransaction) { r.MaxGasAmount = 7 })
	outputs, err := executor.ExecuteBlock(context.Background(), []*transaction.SignedTransaction{txn}, world)
	assert.Nil(t, err, "execute")
	assert.Equal(t, engine.Keep(engine.StatusOutOfGas), outputs[0].Status, "status")
	assert.Equal(t, uint64(7), outputs[0].GasUsed, "gas used")
	assert.Equal(t, "Keep(OUT_OF_GAS)", outputs[0].Status.String(), "text")
}

func TestExecuteBadSignature(t *testing.T) {
	world, key := newTestWorld(t)
	executor := engine.NewBlockExecutor(4, testClock)

	txn := newTransfer(t, key, 0)
	txn.Authenticator.Signature[0] ^= 0xff
	outputs, err := executor.ExecuteBlock(context.Background(), []*transaction.SignedTransaction{txn}, world)
	assert.Nil(t, err, "execute")
	assert.Equal(t, engine.Discard(engine.StatusInvalidSignature), outputs[0].Status, "status")
}

func TestExecuteCancelled(t *testing.T) {
	world, key := newTestWorld(t)
	executor := engine.NewBlockExecutor(1, testClock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := executor.ExecuteBlock(ctx, []*transaction.SignedTransaction{newTransfer(t, key, 0)}, world)
	assert.Equal(t, context.Canceled, err, "cancelled context")
}
