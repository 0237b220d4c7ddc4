// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/util"
)

// Unpack - turn a packed signed transaction back into a record
func (record Packed) Unpack() (*SignedTransaction, error) {
	t := &SignedTransaction{}
	raw := &t.Raw

	rest, err := readAddress(record, &raw.Sender)
	if nil != err {
		return nil, err
	}
	if raw.SequenceNumber, rest, err = util.ReadVarint64(rest); nil != err {
		return nil, err
	}

	tag, rest, err := util.ReadVarint64(rest)
	if nil != err {
		return nil, err
	}
	switch PayloadTag(tag) {
	case TransferTag:
		p := Transfer{}
		if rest, err = readAddress(rest, &p.To); nil != err {
			return nil, err
		}
		if p.Amount, rest, err = util.ReadVarint64(rest); nil != err {
			return nil, err
		}
		raw.Payload = p
	default:
		return nil, fault.ErrUnsupportedPayload
	}

	if raw.MaxGasAmount, rest, err = util.ReadVarint64(rest); nil != err {
		return nil, err
	}
	if raw.GasUnitPrice, rest, err = util.ReadVarint64(rest); nil != err {
		return nil, err
	}
	if raw.ExpirationTimestampSecs, rest, err = util.ReadVarint64(rest); nil != err {
		return nil, err
	}
	if 0 == len(rest) {
		return nil, fault.ErrBufferTooShort
	}
	raw.ChainID = rest[0]
	rest = rest[1:]

	scheme, rest, err := util.ReadVarint64(rest)
	if nil != err {
		return nil, err
	}
	if ed25519Scheme != scheme {
		return nil, fault.ErrInvalidSignature
	}
	if t.Authenticator.PublicKey, rest, err = util.ReadBytes(rest); nil != err {
		return nil, err
	}
	if t.Authenticator.Signature, rest, err = util.ReadBytes(rest); nil != err {
		return nil, err
	}
	if 0 != len(rest) {
		return nil, fault.ErrTrailingData
	}
	return t, nil
}

func readAddress(buffer []byte, a *ledger.Address) ([]byte, error) {
	if len(buffer) < ledger.AddressLength {
		return nil, fault.ErrBufferTooShort
	}
	copy(a[:], buffer[:ledger.AddressLength])
	return buffer[ledger.AddressLength:], nil
}
