// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

// WriteOp - delete a key or set it to a value
type WriteOp struct {
	value *StateValue
}

// Deletion - remove the key
func Deletion() WriteOp {
	return WriteOp{}
}

// Set - create or replace the key
func Set(v *StateValue) WriteOp {
	return WriteOp{value: v}
}

// IsDeletion - true for a delete
func (op WriteOp) IsDeletion() bool {
	return nil == op.value
}

// Value - the value to store, nil for a delete
func (op WriteOp) Value() *StateValue {
	return op.value
}

// WriteEntry - one element of a write set
type WriteEntry struct {
	Key StateKey
	Op  WriteOp
}

// WriteSet - ordered mutations of distinct keys
//
// a later operation on a key already present replaces the earlier one
// and keeps its position
type WriteSet struct {
	entries []WriteEntry
	index   map[string]int
}

// NewWriteSet - empty write set
func NewWriteSet() *WriteSet {
	return &WriteSet{
		index: make(map[string]int),
	}
}

// Put - add or replace the operation for a key
func (w *WriteSet) Put(key StateKey, op WriteOp) {
	if i, ok := w.index[key.encoded]; ok {
		w.entries[i].Op = op
		return
	}
	w.index[key.encoded] = len(w.entries)
	w.entries = append(w.entries, WriteEntry{Key: key, Op: op})
}

// Get - the operation for a key, if any
func (w *WriteSet) Get(key StateKey) (WriteOp, bool) {
	if nil == w {
		return WriteOp{}, false
	}
	i, ok := w.index[key.encoded]
	if !ok {
		return WriteOp{}, false
	}
	return w.entries[i].Op, true
}

// Merge - apply every operation of other on top of this set
func (w *WriteSet) Merge(other *WriteSet) {
	if nil == other {
		return
	}
	for _, e := range other.entries {
		w.Put(e.Key, e.Op)
	}
}

// Entries - the operations in insertion order
func (w *WriteSet) Entries() []WriteEntry {
	if nil == w {
		return nil
	}
	return append([]WriteEntry(nil), w.entries...)
}

// Len - number of distinct keys
func (w *WriteSet) Len() int {
	if nil == w {
		return 0
	}
	return len(w.entries)
}
