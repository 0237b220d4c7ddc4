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

// value record formats
const (
	formatPlain        = 0
	formatWithMetadata = 1
)

// MaxValueBytes - largest value a single write may store
const MaxValueBytes = 1 << 20

// ValueMetadata - optional storage accounting attached to a value
type ValueMetadata struct {
	Deposit           uint64
	CreationTimeUsecs uint64
}

// StateValue - the bytes stored for a state key
type StateValue struct {
	Bytes    []byte
	Metadata *ValueMetadata
}

// NewStateValue - a value without metadata
func NewStateValue(b []byte) *StateValue {
	return &StateValue{Bytes: append([]byte(nil), b...)}
}

// Pack - encode a value for storage
func (v *StateValue) Pack() ([]byte, error) {
	if nil == v {
		return nil, fmt.Errorf("nil value: %w", fault.ErrEncode)
	}
	if len(v.Bytes) > MaxValueBytes {
		return nil, fmt.Errorf("value of: %d bytes: %w", len(v.Bytes), fault.ErrEncode)
	}
	buffer := make([]byte, 0, len(v.Bytes)+util.Varint64MaximumBytes+1)
	if nil == v.Metadata {
		buffer = util.AppendVarint64(buffer, formatPlain)
		return util.AppendBytes(buffer, v.Bytes), nil
	}
	buffer = util.AppendVarint64(buffer, formatWithMetadata)
	buffer = util.AppendBytes(buffer, v.Bytes)
	buffer = util.AppendVarint64(buffer, v.Metadata.Deposit)
	return util.AppendVarint64(buffer, v.Metadata.CreationTimeUsecs), nil
}

// UnpackStateValue - decode a stored value
func UnpackStateValue(buffer []byte) (*StateValue, error) {
	format, rest, err := util.ReadVarint64(buffer)
	if nil != err {
		return nil, err
	}
	if formatPlain != format && formatWithMetadata != format {
		return nil, fault.ErrInvalidValueFormat
	}

	data, rest, err := util.ReadBytes(rest)
	if nil != err {
		return nil, err
	}
	v := &StateValue{Bytes: data}

	if formatWithMetadata == format {
		m := &ValueMetadata{}
		if m.Deposit, rest, err = util.ReadVarint64(rest); nil != err {
			return nil, err
		}
		if m.CreationTimeUsecs, rest, err = util.ReadVarint64(rest); nil != err {
			return nil, err
		}
		v.Metadata = m
	}

	if 0 != len(rest) {
		return nil, fault.ErrTrailingData
	}
	return v, nil
}

// Equal - same bytes and metadata
func (v *StateValue) Equal(other *StateValue) bool {
	if nil == v || nil == other {
		return v == other
	}
	if !bytes.Equal(v.Bytes, other.Bytes) {
		return false
	}
	if nil == v.Metadata || nil == other.Metadata {
		return v.Metadata == other.Metadata
	}
	return *v.Metadata == *other.Metadata
}
