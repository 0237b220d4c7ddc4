// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
)

// StatusCode - result of validating or executing a transaction
type StatusCode uint64

// status codes - keep in numeric order
const (
	StatusExecuted                      StatusCode = 0
	StatusUnknownValidation             StatusCode = 1
	StatusInvalidSignature              StatusCode = 2
	StatusInvalidAuthKey                StatusCode = 3
	StatusSequenceNumberTooOld          StatusCode = 4
	StatusSequenceNumberTooNew          StatusCode = 5
	StatusInsufficientBalanceForFee     StatusCode = 6
	StatusTransactionExpired            StatusCode = 7
	StatusSendingAccountDoesNotExist    StatusCode = 8
	StatusExceededMaxTransactionSize    StatusCode = 13
	StatusMaxGasUnitsExceedsBound       StatusCode = 14
	StatusMaxGasUnitsBelowMinimum       StatusCode = 15
	StatusGasUnitPriceBelowMinimum      StatusCode = 16
	StatusGasUnitPriceAboveMaximum      StatusCode = 17
	StatusBadChainID                    StatusCode = 22
	StatusOutOfGas                      StatusCode = 4002
	StatusAborted                       StatusCode = 4016
	StatusInsufficientBalanceOnTransfer StatusCode = 4017
)

var statusNames = map[StatusCode]string{
	StatusExecuted:                      "EXECUTED",
	StatusUnknownValidation:             "UNKNOWN_VALIDATION_STATUS",
	StatusInvalidSignature:              "INVALID_SIGNATURE",
	StatusInvalidAuthKey:                "INVALID_AUTH_KEY",
	StatusSequenceNumberTooOld:          "SEQUENCE_NUMBER_TOO_OLD",
	StatusSequenceNumberTooNew:          "SEQUENCE_NUMBER_TOO_NEW",
	StatusInsufficientBalanceForFee:     "INSUFFICIENT_BALANCE_FOR_TRANSACTION_FEE",
	StatusTransactionExpired:            "TRANSACTION_EXPIRED",
	StatusSendingAccountDoesNotExist:    "SENDING_ACCOUNT_DOES_NOT_EXIST",
	StatusExceededMaxTransactionSize:    "EXCEEDED_MAX_TRANSACTION_SIZE",
	StatusMaxGasUnitsExceedsBound:       "MAX_GAS_UNITS_EXCEEDS_MAX_GAS_UNITS_BOUND",
	StatusMaxGasUnitsBelowMinimum:       "MAX_GAS_UNITS_BELOW_MIN_TRANSACTION_GAS_UNITS",
	StatusGasUnitPriceBelowMinimum:      "GAS_UNIT_PRICE_BELOW_MIN_BOUND",
	StatusGasUnitPriceAboveMaximum:      "GAS_UNIT_PRICE_ABOVE_MAX_BOUND",
	StatusBadChainID:                    "BAD_CHAIN_ID",
	StatusOutOfGas:                      "OUT_OF_GAS",
	StatusAborted:                       "ABORTED",
	StatusInsufficientBalanceOnTransfer: "EINSUFFICIENT_BALANCE",
}

// String - for the fmt package
func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", uint64(c))
}

// ExecutionStatus - whether an output may be committed, and why
type ExecutionStatus struct {
	Kept bool
	Code StatusCode
}

// Keep - the output is committed, the code says how the
// transaction ended
func Keep(code StatusCode) ExecutionStatus {
	return ExecutionStatus{Kept: true, Code: code}
}

// Discard - the output must not be committed
func Discard(code StatusCode) ExecutionStatus {
	return ExecutionStatus{Kept: false, Code: code}
}

// String - for the fmt package
func (s ExecutionStatus) String() string {
	if s.Kept {
		return fmt.Sprintf("Keep(%s)", s.Code)
	}
	return fmt.Sprintf("Discard(%s)", s.Code)
}

// MarshalText - same as String
func (s ExecutionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
