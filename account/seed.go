// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// seed parameters
var seedHeader = []byte{0x5a, 0xfe, 0x03}

const (
	seedChecksumLength = 4
	seedLength         = 3 + ed25519.SeedSize + seedChecksumLength
)

// Base58Seed - header, seed and checksum in base58 for operators to
// store
func (k *PrivateKey) Base58Seed() string {
	buffer := append(append([]byte{}, seedHeader...), k.seed...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:seedChecksumLength]...)
	return base58.Encode(buffer)
}

// PrivateKeyFromBase58Seed - reverse of Base58Seed
func PrivateKeyFromBase58Seed(s string) (*PrivateKey, error) {
	buffer, err := base58.Decode(s)
	if nil != err || seedLength != len(buffer) {
		return nil, fault.ErrInvalidSeed
	}

	checksumStart := seedLength - seedChecksumLength
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], buffer[checksumStart:]) {
		return nil, fault.ErrInvalidSeed
	}
	if !bytes.Equal(seedHeader, buffer[:len(seedHeader)]) {
		return nil, fault.ErrInvalidSeed
	}
	return PrivateKeyFromSeed(buffer[len(seedHeader):checksumStart])
}
