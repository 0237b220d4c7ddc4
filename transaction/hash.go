// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// HashLength - number of bytes in a transaction hash
const HashLength = 32

// Hash - identifies a committed transaction
type Hash [HashLength]byte

// Hash - sha3-256 over the salted, variant tagged packed transaction
func (t *SignedTransaction) Hash() (Hash, error) {
	packed, err := t.Pack()
	if nil != err {
		return Hash{}, err
	}
	prefix := sha3.Sum256([]byte(transactionSalt))

	h := sha3.New256()
	h.Write(prefix[:])
	h.Write([]byte{userTransactionVariant})
	h.Write(packed)

	var result Hash
	copy(result[:], h.Sum(nil))
	return result, nil
}

// String - for the fmt package
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText - hex text with 0x prefix
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText - reverse of MarshalText, prefix optional
func (h *Hash) UnmarshalText(s []byte) error {
	text := strings.TrimPrefix(string(s), "0x")
	if hex.EncodedLen(HashLength) != len(text) {
		return fault.ErrInvalidKeyLength
	}
	_, err := hex.Decode(h[:], []byte(text))
	return err
}
