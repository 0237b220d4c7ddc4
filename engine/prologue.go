// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"math/bits"
	"time"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// environment - chain wide settings every check depends on
type environment struct {
	chainID uint8
	gas     GasSchedule
}

func loadEnvironment(view ledger.StateView) (*environment, error) {
	var chainID ChainIDResource
	found, err := FetchConfig(view, &chainID)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrChainResourceMissing
	}

	env := &environment{chainID: chainID.ID}
	found, err = FetchConfig(view, &env.gas)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrChainResourceMissing
	}
	return env, nil
}

// sender - resources of the sending account loaded by the prologue
type sender struct {
	account AccountResource
	coins   CoinStore
}

// prologue - every check that must pass before a transaction may run
//
// a nil status means the transaction can be executed, the error is
// reserved for failures reading the view
func prologue(env *environment, txn *transaction.SignedTransaction, view ledger.StateView, now time.Time) (*StatusCode, *sender, error) {
	raw := &txn.Raw
	gas := &env.gas

	if uint64(txn.Size()) > gas.MaxTransactionSizeBytes {
		return status(StatusExceededMaxTransactionSize), nil, nil
	}
	if _, ok := raw.Payload.(transaction.Transfer); !ok {
		if _, ok := raw.Payload.(*transaction.Transfer); !ok {
			return status(StatusUnknownValidation), nil, nil
		}
	}
	if nil != txn.CheckSignature() {
		return status(StatusInvalidSignature), nil, nil
	}

	switch {
	case raw.MaxGasAmount > gas.MaxTransactionGasUnits:
		return status(StatusMaxGasUnitsExceedsBound), nil, nil
	case raw.MaxGasAmount < gas.MinTransactionGasUnits:
		return status(StatusMaxGasUnitsBelowMinimum), nil, nil
	case raw.GasUnitPrice < gas.MinGasUnitPrice:
		return status(StatusGasUnitPriceBelowMinimum), nil, nil
	case raw.GasUnitPrice > gas.MaxGasUnitPrice:
		return status(StatusGasUnitPriceAboveMaximum), nil, nil
	}

	if raw.ChainID != env.chainID {
		return status(StatusBadChainID), nil, nil
	}
	if uint64(now.Unix()) >= raw.ExpirationTimestampSecs {
		return status(StatusTransactionExpired), nil, nil
	}

	s := &sender{}
	found, err := ReadResource(view, raw.Sender, &s.account)
	if nil != err {
		return nil, nil, err
	}
	if !found {
		return status(StatusSendingAccountDoesNotExist), nil, nil
	}

	authKey, err := account.AuthenticationKey(txn.Authenticator.PublicKey)
	if nil != err || authKey != s.account.AuthenticationKey {
		return status(StatusInvalidAuthKey), nil, nil
	}

	switch {
	case raw.SequenceNumber < s.account.SequenceNumber:
		return status(StatusSequenceNumberTooOld), nil, nil
	case raw.SequenceNumber > s.account.SequenceNumber:
		return status(StatusSequenceNumberTooNew), nil, nil
	}

	if _, err := ReadResource(view, raw.Sender, &s.coins); nil != err {
		return nil, nil, err
	}
	hi, maxFee := bits.Mul64(raw.MaxGasAmount, raw.GasUnitPrice)
	if 0 != hi || s.coins.Value < maxFee {
		return status(StatusInsufficientBalanceForFee), nil, nil
	}

	return nil, s, nil
}

func status(code StatusCode) *StatusCode {
	return &code
}
