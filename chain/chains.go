// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Mainnet    = "mainnet"
	Testnet    = "testnet"
	Devnet     = "devnet"
	Testing    = "testing"
	Premainnet = "premainnet"
)

// numeric identifiers carried in every transaction
var ids = map[string]uint8{
	Mainnet:    1,
	Testnet:    2,
	Devnet:     3,
	Testing:    4,
	Premainnet: 5,
}

// Valid - validate a chain name
func Valid(name string) bool {
	_, ok := ids[name]
	return ok
}

// ID - numeric chain id for a name, zero if the name is unknown
func ID(name string) uint8 {
	return ids[name]
}

// Name - reverse lookup of ID, empty if not a named chain
func Name(id uint8) string {
	for name, n := range ids {
		if n == id {
			return name
		}
	}
	return ""
}
