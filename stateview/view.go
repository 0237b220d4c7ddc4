// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateview

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
)

// View - the current ledger state
//
// safe for concurrent use, every read goes to the store so commits are
// seen as soon as they return
type View struct {
	log   *logger.L
	store Store
}

// New - create a view over the ledger state pool
func New(log *logger.L, store Store) *View {
	return &View{
		log:   log,
		store: store,
	}
}

// GetStateValue - the value at a key, nil if there is none
func (v *View) GetStateValue(key ledger.StateKey) (*ledger.StateValue, error) {
	buffer, found, err := v.store.Get(key.Encoded())
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	value, err := ledger.UnpackStateValue(buffer)
	if nil != err {
		v.log.Errorf("key: %s decode error: %s", key, err)
		return nil, fmt.Errorf("key: %s: %s: %w", key, err, fault.ErrDecode)
	}
	return value, nil
}

// GetUsage - space used is not tracked
func (v *View) GetUsage() (ledger.StorageUsage, error) {
	return ledger.Untracked, nil
}

// ChainResource - the chain id record, nil before genesis
func (v *View) ChainResource() (*engine.ChainIDResource, error) {
	r := &engine.ChainIDResource{}
	found, err := engine.FetchConfig(v, r)
	if nil != err || !found {
		return nil, err
	}
	return r, nil
}

// Account - summary of one account, nil if it does not exist
func (v *View) Account(address ledger.Address) (*engine.AccountState, error) {
	return engine.ReadAccountState(v, address)
}
