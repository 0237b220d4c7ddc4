// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

// StorageUsage - how much state is held
type StorageUsage struct {
	Tracked bool
	Items   uint64
	Bytes   uint64
}

// Untracked - usage is not being measured
var Untracked = StorageUsage{}

// StateView - read access to the world state
//
// a missing key is (nil, nil), an error is reserved for failures
type StateView interface {
	GetStateValue(StateKey) (*StateValue, error)
	GetUsage() (StorageUsage, error)
}

// Overlay - a write set layered over a view
//
// reads see the pending operations first, writes never reach the base
type Overlay struct {
	base    StateView
	pending *WriteSet
}

// NewOverlay - start an empty overlay, base may be nil
func NewOverlay(base StateView) *Overlay {
	return &Overlay{
		base:    base,
		pending: NewWriteSet(),
	}
}

// GetStateValue - pending value, else the base value
func (o *Overlay) GetStateValue(key StateKey) (*StateValue, error) {
	if op, ok := o.pending.Get(key); ok {
		return op.Value(), nil
	}
	if nil == o.base {
		return nil, nil
	}
	return o.base.GetStateValue(key)
}

// GetUsage - usage of the base
func (o *Overlay) GetUsage() (StorageUsage, error) {
	if nil == o.base {
		return Untracked, nil
	}
	return o.base.GetUsage()
}

// Apply - stack a write set on the overlay
func (o *Overlay) Apply(ws *WriteSet) {
	o.pending.Merge(ws)
}

// Pending - everything applied so far
func (o *Overlay) Pending() *WriteSet {
	ws := NewWriteSet()
	ws.Merge(o.pending)
	return ws
}
