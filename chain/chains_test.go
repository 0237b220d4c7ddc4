// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/chain"
)

func TestNamedChains(t *testing.T) {
	assert.True(t, chain.Valid(chain.Testing), "testing")
	assert.False(t, chain.Valid("bitmark"), "unknown chain")
	assert.Equal(t, uint8(1), chain.ID(chain.Mainnet), "mainnet")
	assert.Equal(t, uint8(4), chain.ID(chain.Testing), "testing")
	assert.Equal(t, uint8(0), chain.ID("nope"), "unknown id")
	assert.Equal(t, chain.Devnet, chain.Name(3), "reverse")
	assert.Equal(t, "", chain.Name(99), "unnamed")
}
