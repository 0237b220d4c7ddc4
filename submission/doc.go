// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submission moves a signed transaction through validation,
// execution and commit on a set of worker goroutines
//
//   received -> validating -> rejected
//                          -> validated -> executing -> failed
//                                                    -> committed
//
// validation of different transactions runs concurrently, execution
// and commit are serialised so each transaction executes against the
// state left by the previous commit
package submission
