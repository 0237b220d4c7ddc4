// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledger-cli - generate keys and send transfers to a ledgerd
//
//   ledger-cli generate
//   ledger-cli -c https://host:8080 -k account -a 0xa11ce
//   ledger-cli transfer -s SEED -t 0xb0b -a 1000
package main
