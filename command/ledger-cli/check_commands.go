// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/ledger"
)

func checkSeed(seed string) (*account.PrivateKey, error) {
	if "" == seed {
		return nil, fmt.Errorf("seed is required")
	}
	return account.PrivateKeyFromBase58Seed(seed)
}

func checkAddress(address string) (ledger.Address, error) {
	if "" == address {
		return ledger.Address{}, fmt.Errorf("address is required")
	}
	return ledger.AddressFromHex(address)
}

// exactly one of address or seed
func checkAccount(address string, seed string) (ledger.Address, error) {
	switch {
	case "" != address && "" != seed:
		return ledger.Address{}, fmt.Errorf("only one of address or seed is allowed")
	case "" != seed:
		key, err := checkSeed(seed)
		if nil != err {
			return ledger.Address{}, err
		}
		return key.Address(), nil
	default:
		return checkAddress(address)
	}
}
