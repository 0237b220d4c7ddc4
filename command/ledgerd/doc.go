// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledgerd - accept signed transactions over HTTP, validate and
// execute them and keep the resulting ledger state in leveldb
//
// the database is created with its genesis state on first start;
// later starts reuse it unchanged
//
// setup:
//
//   ledgerd gen-rpc-cert DIR        # optional TLS for the listeners
//   ledgerd --config-file=ledgerd.conf genesis
//   ledgerd --config-file=ledgerd.conf start
package main
