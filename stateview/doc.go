// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stateview presents the ledger state pool of the database
// as the read contract the execution engine expects, and is the only
// path through which write sets reach the database
package stateview
