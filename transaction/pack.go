// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// domain separation prefixes
const (
	rawTransactionSalt = "LEDGER::RawTransaction"
	transactionSalt    = "LEDGER::Transaction"
)

// authenticator schemes
const (
	ed25519Scheme = 0
)

// transaction variants hashed under the transaction salt
const (
	userTransactionVariant = 0
)

// Packed - a transaction in binary form
type Packed []byte

// Pack - raw transaction fields in order, payload as Varint64(tag)
// followed by its fields
func (raw *RawTransaction) Pack() (Packed, error) {
	if nil == raw.Payload {
		return nil, fault.ErrUnsupportedPayload
	}

	buffer := make([]byte, 0, 128)
	buffer = append(buffer, raw.Sender[:]...)
	buffer = util.AppendVarint64(buffer, raw.SequenceNumber)

	switch p := raw.Payload.(type) {
	case Transfer:
		buffer = util.AppendVarint64(buffer, uint64(TransferTag))
		buffer = append(buffer, p.To[:]...)
		buffer = util.AppendVarint64(buffer, p.Amount)
	case *Transfer:
		buffer = util.AppendVarint64(buffer, uint64(TransferTag))
		buffer = append(buffer, p.To[:]...)
		buffer = util.AppendVarint64(buffer, p.Amount)
	default:
		return nil, fmt.Errorf("payload: %T: %w", p, fault.ErrUnsupportedPayload)
	}

	buffer = util.AppendVarint64(buffer, raw.MaxGasAmount)
	buffer = util.AppendVarint64(buffer, raw.GasUnitPrice)
	buffer = util.AppendVarint64(buffer, raw.ExpirationTimestampSecs)
	return append(buffer, raw.ChainID), nil
}

// SigningMessage - the bytes an authenticator signs
func (raw *RawTransaction) SigningMessage() ([]byte, error) {
	packed, err := raw.Pack()
	if nil != err {
		return nil, err
	}
	prefix := sha3.Sum256([]byte(rawTransactionSalt))
	return append(prefix[:], packed...), nil
}

// Pack - raw transaction followed by the authenticator
func (t *SignedTransaction) Pack() (Packed, error) {
	buffer, err := t.Raw.Pack()
	if nil != err {
		return nil, err
	}
	buffer = util.AppendVarint64(buffer, ed25519Scheme)
	buffer = util.AppendBytes(buffer, t.Authenticator.PublicKey)
	return util.AppendBytes(buffer, t.Authenticator.Signature), nil
}

// Size - length of the packed form, zero if it cannot be packed
func (t *SignedTransaction) Size() int {
	packed, err := t.Pack()
	if nil != err {
		return 0
	}
	return len(packed)
}
