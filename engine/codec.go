// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/util"
)

// resource records are fields in declaration order, integers as
// Varint64, variable length data with a Varint64 length prefix
type packer []byte

func (p packer) uint64(v uint64) packer {
	return util.AppendVarint64(p, v)
}

func (p packer) address(a ledger.Address) packer {
	return append(p, a[:]...)
}

func (p packer) bytes(b []byte) packer {
	return util.AppendBytes(p, b)
}

// unpacker remembers the first error, every later read is a no-op
type unpacker struct {
	buffer []byte
	err    error
}

func (u *unpacker) uint64() uint64 {
	if nil != u.err {
		return 0
	}
	v, rest, err := util.ReadVarint64(u.buffer)
	u.buffer, u.err = rest, err
	return v
}

func (u *unpacker) address() ledger.Address {
	var a ledger.Address
	if nil != u.err {
		return a
	}
	if len(u.buffer) < ledger.AddressLength {
		u.err = fault.ErrBufferTooShort
		return a
	}
	copy(a[:], u.buffer)
	u.buffer = u.buffer[ledger.AddressLength:]
	return a
}

func (u *unpacker) bytes() []byte {
	if nil != u.err {
		return nil
	}
	b, rest, err := util.ReadBytes(u.buffer)
	u.buffer, u.err = rest, err
	return b
}

// count - a list length, bounded by the remaining buffer so corrupt
// input cannot force a huge allocation
func (u *unpacker) count() int {
	n := u.uint64()
	if nil == u.err && n > uint64(len(u.buffer)) {
		u.err = fault.ErrBufferTooShort
		return 0
	}
	return int(n)
}

func (u *unpacker) finish() error {
	if nil != u.err {
		return u.err
	}
	if 0 != len(u.buffer) {
		return fault.ErrTrailingData
	}
	return nil
}
