// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateview

import (
	"github.com/bitmark-inc/ledgerd/storage"
)

// Store - the part of a storage pool used by the view and committer
type Store interface {
	Get([]byte) ([]byte, bool, error)
	ApplyBatch([]storage.Mutation) error
}
