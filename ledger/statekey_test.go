// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

func TestStateKeyEncodingIsStable(t *testing.T) {
	owner := ledger.MustAddress("0xabc")
	keys := []ledger.StateKey{
		ledger.ResourceKey(owner, "0x1::account::Account"),
		ledger.ModuleKey(ledger.CoreAddress, "coin"),
		ledger.TableItemKey(owner, []byte{1, 2, 3}),
		ledger.RawKey([]byte("raw")),
	}

	for i, k := range keys {
		decoded, err := ledger.StateKeyFromEncoded(k.Encoded())
		assert.Nil(t, err, "%d: decode", i)
		assert.True(t, k.Equal(decoded), "%d: %s != %s", i, k, decoded)
		assert.Equal(t, k.Kind(), decoded.Kind(), "%d: kind", i)
		assert.Equal(t, k.Encoded(), decoded.Encoded(), "%d: encoding", i)
	}
}

func TestStateKeyDistinct(t *testing.T) {
	owner := ledger.MustAddress("0xabc")

	// same name under a different kind must not collide
	r := ledger.ResourceKey(owner, "coin")
	m := ledger.ModuleKey(owner, "coin")
	assert.False(t, r.Equal(m), "resource and module collide")

	a := ledger.ResourceKey(owner, "0x1::coin::CoinStore")
	b := ledger.ResourceKey(owner, "0x1::coin::CoinStore")
	assert.True(t, a.Equal(b), "same key differs")
	assert.False(t, a.IsZero(), "non zero")
	assert.True(t, ledger.StateKey{}.IsZero(), "zero")
}

func TestStateKeyDecodeErrors(t *testing.T) {
	_, err := ledger.StateKeyFromEncoded([]byte{})
	assert.Equal(t, fault.ErrBufferTooShort, err, "empty")

	_, err = ledger.StateKeyFromEncoded([]byte{0x09, 0x00})
	assert.Equal(t, fault.ErrInvalidStateKeyKind, err, "bad kind")

	_, err = ledger.StateKeyFromEncoded([]byte{0x01, 0x00})
	assert.Equal(t, fault.ErrBufferTooShort, err, "short address")

	raw := ledger.RawKey([]byte{7}).Encoded()
	_, err = ledger.StateKeyFromEncoded(append(raw, 0x00))
	assert.Equal(t, fault.ErrTrailingData, err, "trailing")
}
