// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// KeyKind - the type of item a state key addresses
type KeyKind uint64

// possible key kinds
const (
	KindResource  KeyKind = 1
	KindModule    KeyKind = 2
	KindTableItem KeyKind = 3
	KindRaw       KeyKind = 4
)

// StateKey - identifies one item of world state
//
// immutable, two keys are the same item exactly when their encodings
// are equal
type StateKey struct {
	kind    KeyKind
	address Address
	name    string
	data    []byte
	encoded string
}

// ResourceKey - a resource of a type published under an account
func ResourceKey(address Address, typeTag string) StateKey {
	return newStateKey(KindResource, address, typeTag, nil)
}

// ModuleKey - a code module published under an account
func ModuleKey(address Address, name string) StateKey {
	return newStateKey(KindModule, address, name, nil)
}

// TableItemKey - one entry of a table identified by its handle
func TableItemKey(handle Address, key []byte) StateKey {
	return newStateKey(KindTableItem, handle, "", key)
}

// RawKey - an opaque key
func RawKey(data []byte) StateKey {
	return newStateKey(KindRaw, Address{}, "", data)
}

func newStateKey(kind KeyKind, address Address, name string, data []byte) StateKey {
	k := StateKey{
		kind:    kind,
		address: address,
		name:    name,
		data:    append([]byte(nil), data...),
	}

	buffer := util.ToVarint64(uint64(kind))
	switch kind {
	case KindResource, KindModule:
		buffer = append(buffer, address[:]...)
		buffer = util.AppendBytes(buffer, []byte(name))
	case KindTableItem:
		buffer = append(buffer, address[:]...)
		buffer = util.AppendBytes(buffer, data)
	case KindRaw:
		buffer = util.AppendBytes(buffer, data)
	}
	k.encoded = string(buffer)
	return k
}

// StateKeyFromEncoded - reverse of Encoded
func StateKeyFromEncoded(buffer []byte) (StateKey, error) {
	kind, rest, err := util.ReadVarint64(buffer)
	if nil != err {
		return StateKey{}, err
	}

	var address Address
	var name string
	var data []byte

	switch KeyKind(kind) {
	case KindResource, KindModule, KindTableItem:
		if len(rest) < AddressLength {
			return StateKey{}, fault.ErrBufferTooShort
		}
		copy(address[:], rest[:AddressLength])
		b, r, err := util.ReadBytes(rest[AddressLength:])
		if nil != err {
			return StateKey{}, err
		}
		if KindTableItem == KeyKind(kind) {
			data = b
		} else {
			name = string(b)
		}
		rest = r
	case KindRaw:
		data, rest, err = util.ReadBytes(rest)
		if nil != err {
			return StateKey{}, err
		}
	default:
		return StateKey{}, fault.ErrInvalidStateKeyKind
	}
	if 0 != len(rest) {
		return StateKey{}, fault.ErrTrailingData
	}
	return newStateKey(KeyKind(kind), address, name, data), nil
}

// Kind - what the key addresses
func (k StateKey) Kind() KeyKind { return k.kind }

// Address - owning account, or table handle for table items
func (k StateKey) Address() Address { return k.address }

// Name - resource type tag or module name
func (k StateKey) Name() string { return k.name }

// Data - table item key or raw key bytes
func (k StateKey) Data() []byte { return append([]byte(nil), k.data...) }

// Encoded - the canonical byte encoding used as the storage key
func (k StateKey) Encoded() []byte {
	return []byte(k.encoded)
}

// Equal - same item of state
func (k StateKey) Equal(other StateKey) bool {
	return k.encoded == other.encoded
}

// IsZero - true for the zero value which addresses nothing
func (k StateKey) IsZero() bool {
	return "" == k.encoded
}

// String - for the fmt package
func (k StateKey) String() string {
	switch k.kind {
	case KindResource:
		return fmt.Sprintf("resource(%s, %s)", k.address, k.name)
	case KindModule:
		return fmt.Sprintf("module(%s::%s)", k.address, k.name)
	case KindTableItem:
		return fmt.Sprintf("table_item(%s, %x)", k.address, k.data)
	case KindRaw:
		return fmt.Sprintf("raw(%x)", k.data)
	default:
		return "invalid"
	}
}

// Less - total order on encodings
func (k StateKey) Less(other StateKey) bool {
	return bytes.Compare([]byte(k.encoded), []byte(other.encoded)) < 0
}
