// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// scheme byte appended to the public key when deriving an
// authentication key
const ed25519Scheme = 0x00

// AuthenticationKey - derive the authentication key of an ed25519
// public key, which is also the address of a freshly created account
func AuthenticationKey(publicKey []byte) (ledger.Address, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return ledger.Address{}, fault.ErrInvalidPublicKey
	}
	h := sha3.New256()
	h.Write(publicKey)
	h.Write([]byte{ed25519Scheme})

	var a ledger.Address
	copy(a[:], h.Sum(nil))
	return a, nil
}

// CheckSignature - verify an ed25519 signature
func CheckSignature(publicKey []byte, message []byte, signature []byte) error {
	if ed25519.PublicKeySize != len(publicKey) {
		return fault.ErrInvalidPublicKey
	}
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(publicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
