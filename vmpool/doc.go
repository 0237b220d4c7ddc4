// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vmpool holds a fixed set of execution contexts shared by
// concurrent requests
//
// a slot is chosen at random, there is no fairness between waiters
package vmpool
