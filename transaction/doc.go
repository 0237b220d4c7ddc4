// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - signed user transactions
//
// Binary packing (used for signing and hashing), the JSON form
// accepted over RPC and the envelope that tags the transaction family.
package transaction
