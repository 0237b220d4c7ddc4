// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// PrivateKey - an ed25519 signing key and the seed it came from
type PrivateKey struct {
	seed       []byte
	privateKey ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return PrivateKeyFromSeed(seed)
}

// PrivateKeyFromSeed - expand a 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidSeed
	}
	return &PrivateKey{
		seed:       append([]byte(nil), seed...),
		privateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// DeterministicPrivateKey - a reproducible key for tests and genesis
// validators, derived from a label and an index
func DeterministicPrivateKey(label string, index uint64) *PrivateKey {
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, index)

	h := sha3.New256()
	h.Write([]byte(label))
	h.Write(n)

	key, _ := PrivateKeyFromSeed(h.Sum(nil))
	return key
}

// PublicKey - the verifying half
func (k *PrivateKey) PublicKey() []byte {
	return append([]byte(nil), k.privateKey.Public().(ed25519.PublicKey)...)
}

// Seed - the 32 byte seed
func (k *PrivateKey) Seed() []byte {
	return append([]byte(nil), k.seed...)
}

// Address - the address of an account created for this key
func (k *PrivateKey) Address() ledger.Address {
	a, _ := AuthenticationKey(k.PublicKey())
	return a
}

// Sign - sign a message
func (k *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.privateKey, message)
}
