// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

const (
	testChainID = 4
	testBalance = 100000000
)

var (
	testNow   = time.Unix(1700000000, 0)
	testClock = func() time.Time { return testNow }
)

// a world state after genesis with one funded account
func newTestWorld(t *testing.T) (*ledger.Overlay, *account.PrivateKey) {
	key := account.DeterministicPrivateKey("alice", 0)
	g := &engine.Genesis{
		ChainID:       testChainID,
		Configuration: engine.DefaultGenesisConfiguration(),
		GasSchedule:   engine.DefaultGasSchedule(),
		Validators:    engine.TestValidators(4, engine.DefaultValidatorStake),
		Accounts: []engine.AccountBalance{
			{Address: key.Address(), Balance: testBalance},
		},
		Framework: engine.DefaultBundle(),
	}
	ws, err := engine.GenerateGenesis(g)
	assert.Nil(t, err, "genesis")

	world := ledger.NewOverlay(nil)
	world.Apply(ws)
	return world, key
}

type rawOption func(*transaction.RawTransaction)

func newTransfer(t *testing.T, key *account.PrivateKey, sequence uint64, options ...rawOption) *transaction.SignedTransaction {
	raw := transaction.RawTransaction{
		Sender:                  key.Address(),
		SequenceNumber:          sequence,
		Payload:                 transaction.Transfer{To: ledger.MustAddress("0xb0b"), Amount: 1000},
		MaxGasAmount:            500000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: uint64(testNow.Unix()) + 600,
		ChainID:                 testChainID,
	}
	for _, o := range options {
		o(&raw)
	}
	signed, err := transaction.Sign(raw, key)
	assert.Nil(t, err, "sign")
	return signed
}
