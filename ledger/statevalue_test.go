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

func TestStateValuePack(t *testing.T) {
	values := []*ledger.StateValue{
		ledger.NewStateValue([]byte("plain")),
		ledger.NewStateValue(nil),
		{
			Bytes:    []byte{0xff, 0x00},
			Metadata: &ledger.ValueMetadata{Deposit: 100, CreationTimeUsecs: 1663456089000000},
		},
	}

	for i, v := range values {
		packed, err := v.Pack()
		assert.Nil(t, err, "%d: pack", i)
		unpacked, err := ledger.UnpackStateValue(packed)
		assert.Nil(t, err, "%d: unpack", i)
		assert.True(t, v.Equal(unpacked), "%d: mismatch", i)
	}
}

func TestStateValueCorrupt(t *testing.T) {
	_, err := ledger.UnpackStateValue([]byte{0x07, 0x00})
	assert.Equal(t, fault.ErrInvalidValueFormat, err, "format")

	_, err = ledger.UnpackStateValue([]byte{0x00, 0x05, 'a'})
	assert.Equal(t, fault.ErrBufferTooShort, err, "truncated")

	_, err = ledger.UnpackStateValue([]byte{0x00, 0x01, 'a', 'b'})
	assert.Equal(t, fault.ErrTrailingData, err, "trailing")

	var missing *ledger.StateValue
	_, err = missing.Pack()
	assert.True(t, fault.IsErrRecord(err), "nil value")

	_, err = ledger.NewStateValue(make([]byte, ledger.MaxValueBytes+1)).Pack()
	assert.True(t, fault.IsErrRecord(err), "oversized value")
}
