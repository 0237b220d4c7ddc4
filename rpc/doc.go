// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the HTTP interface to the ledger
//
//   GET  /rpc/v1/transactions/chain_id   chain id as a JSON number
//   POST /rpc/v1/transactions/submit     {"Move": signed transaction} -> hash
//   POST /rpc/v1/transactions/simulate   {"Move": signed transaction} -> output summary
//   GET  /rpc/v1/accounts/:address       sequence number and balance
//   GET  /rpc/v1/status                  server details
//
// failures are returned as a JSON string, every processing error is
// reported as 500 Internal Server Error
package rpc
