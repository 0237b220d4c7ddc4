// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the world state data model
//
// State keys, state values, write operations and write sets together
// with the read contract the execution engine uses to look at the
// world state.
package ledger
