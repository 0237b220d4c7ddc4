// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis opens the ledger database and installs the initial
// state of the chain before anything else may read it
//
// bootstrapping a database that already holds a chain id leaves it
// unchanged
package genesis
