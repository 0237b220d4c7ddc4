// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateview

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Committer - writes complete write sets to the store
type Committer struct {
	sync.Mutex
	log   *logger.L
	store Store
}

// NewCommitter - create the single writer of the ledger state pool
func NewCommitter(log *logger.L, store Store) *Committer {
	return &Committer{
		log:   log,
		store: store,
	}
}

// Commit - apply a write set as one atomic batch
//
// every value is encoded before the store is touched, so an encode
// failure leaves the state unchanged
func (c *Committer) Commit(ws *ledger.WriteSet) error {
	entries := ws.Entries()
	if 0 == len(entries) {
		return nil
	}

	mutations := make([]storage.Mutation, len(entries))
	for i, e := range entries {
		key := e.Key.Encoded()
		if e.Op.IsDeletion() {
			mutations[i] = storage.Delete(key)
			continue
		}
		value, err := e.Op.Value().Pack()
		if nil != err {
			c.log.Errorf("key: %s encode error: %s", e.Key, err)
			return fmt.Errorf("key: %s: %s: %w", e.Key, err, fault.ErrEncode)
		}
		mutations[i] = storage.Put(key, value)
	}

	c.Lock()
	defer c.Unlock()

	if err := c.store.ApplyBatch(mutations); nil != err {
		c.log.Errorf("commit of: %d operations error: %s", len(mutations), err)
		return err
	}
	c.log.Debugf("committed: %d operations", len(mutations))
	return nil
}
