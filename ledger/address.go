// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// AddressLength - number of bytes in an account address
const AddressLength = 32

// Address - an account address
//
// text form is "0x" followed by 64 lower case hex digits, short forms
// like "0x1" are accepted on input and left padded with zeros
type Address [AddressLength]byte

// CoreAddress - the account holding framework modules and
// chain wide configuration
var CoreAddress = MustAddress("0x1")

// AddressFromHex - parse the text form of an address
func AddressFromHex(s string) (Address, error) {
	var a Address

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if 0 == len(s) || len(s) > 2*AddressLength {
		return a, fault.ErrInvalidAddress
	}
	if 0 != len(s)%2 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if nil != err {
		return a, fault.ErrInvalidAddress
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustAddress - parse a literal address, panics on error
func MustAddress(s string) Address {
	a, err := AddressFromHex(s)
	if nil != err {
		panic(err)
	}
	return a
}

// AddressFromBytes - validate and copy a binary address
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if AddressLength != len(b) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// String - for the fmt package
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText - convert address to hex text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert hex text into an address
func (a *Address) UnmarshalText(s []byte) error {
	parsed, err := AddressFromHex(string(s))
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}
