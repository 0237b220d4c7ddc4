// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// PayloadTag - the type of a payload in packed form
type PayloadTag uint64

// payload tags
const (
	TransferTag PayloadTag = 1
)

// Payload - the action requested by a transaction
type Payload interface {
	Tag() PayloadTag
}

// Transfer - move coins to another account, creating it if missing
type Transfer struct {
	To     ledger.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

// Tag - payload tag
func (Transfer) Tag() PayloadTag { return TransferTag }

// RawTransaction - the part covered by the signature
type RawTransaction struct {
	Sender                  ledger.Address `json:"sender"`
	SequenceNumber          uint64         `json:"sequence_number"`
	Payload                 Payload        `json:"-"`
	MaxGasAmount            uint64         `json:"max_gas_amount"`
	GasUnitPrice            uint64         `json:"gas_unit_price"`
	ExpirationTimestampSecs uint64         `json:"expiration_timestamp_secs"`
	ChainID                 uint8          `json:"chain_id"`
}

// Authenticator - the ed25519 proof of the sender
type Authenticator struct {
	PublicKey HexBytes `json:"public_key"`
	Signature HexBytes `json:"signature"`
}

// SignedTransaction - a raw transaction with its authenticator
type SignedTransaction struct {
	Raw           RawTransaction `json:"raw_txn"`
	Authenticator Authenticator  `json:"authenticator"`
}

// Sign - produce a signed transaction with a key
func Sign(raw RawTransaction, key *account.PrivateKey) (*SignedTransaction, error) {
	message, err := raw.SigningMessage()
	if nil != err {
		return nil, err
	}
	return &SignedTransaction{
		Raw: raw,
		Authenticator: Authenticator{
			PublicKey: key.PublicKey(),
			Signature: key.Sign(message),
		},
	}, nil
}

// CheckSignature - verify the authenticator over the raw transaction
func (t *SignedTransaction) CheckSignature() error {
	message, err := t.Raw.SigningMessage()
	if nil != err {
		return err
	}
	return account.CheckSignature(t.Authenticator.PublicKey, message, t.Authenticator.Signature)
}
