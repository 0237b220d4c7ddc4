// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

func makeSigned(t *testing.T) (*transaction.SignedTransaction, *account.PrivateKey) {
	key := account.DeterministicPrivateKey("sender", 0)
	raw := transaction.RawTransaction{
		Sender:                  key.Address(),
		SequenceNumber:          0,
		Payload:                 transaction.Transfer{To: ledger.MustAddress("0xbeef"), Amount: 100},
		MaxGasAmount:            500000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 4102444800,
		ChainID:                 4,
	}
	signed, err := transaction.Sign(raw, key)
	assert.Nil(t, err, "sign")
	return signed, key
}

func TestSignature(t *testing.T) {
	signed, _ := makeSigned(t)
	assert.Nil(t, signed.CheckSignature(), "fresh signature")

	signed.Raw.SequenceNumber = 1
	assert.Equal(t, fault.ErrInvalidSignature, signed.CheckSignature(), "altered transaction")
}

func TestPackUnpack(t *testing.T) {
	signed, _ := makeSigned(t)

	packed, err := signed.Pack()
	assert.Nil(t, err, "pack")
	assert.Equal(t, len(packed), signed.Size(), "size")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, signed, unpacked, "round trip")

	_, err = append(packed, 0x00).Unpack()
	assert.Equal(t, fault.ErrTrailingData, err, "trailing")

	_, err = packed[:40].Unpack()
	assert.NotNil(t, err, "truncated")
}

func TestHash(t *testing.T) {
	signed, _ := makeSigned(t)

	h1, err := signed.Hash()
	assert.Nil(t, err, "hash")
	h2, _ := signed.Hash()
	assert.Equal(t, h1, h2, "deterministic")

	signed.Raw.GasUnitPrice += 1
	h3, _ := signed.Hash()
	assert.NotEqual(t, h1, h3, "content ignored")

	text, err := h1.MarshalText()
	assert.Nil(t, err, "marshal")
	assert.Equal(t, 2+2*transaction.HashLength, len(text), "text length")

	var back transaction.Hash
	assert.Nil(t, back.UnmarshalText(text), "unmarshal")
	assert.Equal(t, h1, back, "text round trip")
}

func TestEnvelope(t *testing.T) {
	signed, _ := makeSigned(t)

	body, err := json.Marshal(transaction.Envelope{Move: signed})
	assert.Nil(t, err, "marshal")
	assert.True(t, strings.HasPrefix(string(body), `{"Move":{"raw_txn":{`), "tagged: %s", body)

	decoded, err := transaction.ReadEnvelope(strings.NewReader(string(body)))
	assert.Nil(t, err, "read")
	assert.Equal(t, signed, decoded, "round trip")
	assert.Nil(t, decoded.CheckSignature(), "signature survives")
}

func TestEnvelopeMalformed(t *testing.T) {
	bodies := []string{
		``,
		`not json`,
		`{}`,
		`{"Move": null}`,
		`{"Eth": {}}`,
		`{"Move": {"raw_txn": {}, "authenticator": {}}}`,
		`{"Move": {"raw_txn": {"payload": {"Publish": {}}}, "authenticator": {"Ed25519": {}}}}`,
	}
	for i, b := range bodies {
		_, err := transaction.ReadEnvelope(strings.NewReader(b))
		assert.NotNil(t, err, "%d: accepted: %s", i, b)
		assert.True(t, fault.IsErrInvalid(err), "%d: not a bad request: %v", i, err)
	}
}
