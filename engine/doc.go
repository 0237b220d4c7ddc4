// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - deterministic transaction validation and execution
//
// The VM validates single transactions against a state view, the
// block executor turns transactions into write sets and genesis
// produces the initial write set of a chain.  Nothing here writes to
// storage: every result is a write set for the caller to commit.
package engine
