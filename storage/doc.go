// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// all keys of one pool share a single byte prefix so pools can never
// collide, pools are declared as fields of the "pools" struct and
// initialised by scanning the struct tags on open
//
// mutations are only ever written as whole batches, reads go through
// a cache that is updated after each successful batch write
package storage
