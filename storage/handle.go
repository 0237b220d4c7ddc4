// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgerd/fault"
)

// PoolHandle - access to the keys of one pool
type PoolHandle struct {
	prefix byte
	store  *Store
}

// Mutation - one element of a batch, Value is ignored for a delete
type Mutation struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Put - mutation to store a key/value pair
func Put(key []byte, value []byte) Mutation {
	return Mutation{Key: key, Value: value}
}

// Delete - mutation to remove a key
func Delete(key []byte) Mutation {
	return Mutation{Key: key, Delete: true}
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key
//
// the second result is false if the key is not present, the value is
// a copy
func (p *PoolHandle) Get(key []byte) ([]byte, bool, error) {
	s := p.store
	s.RLock()
	defer s.RUnlock()

	if nil == s.access {
		return nil, false, fault.ErrDatabaseIsNotSet
	}

	prefixedKey := p.prefixKey(key)
	cacheKey := string(prefixedKey)

	if value, present, cached := s.cache.Get(cacheKey); cached {
		return value, present, nil
	}

	value, err := s.access.Get(prefixedKey)
	if leveldb.ErrNotFound == err {
		s.cache.Set(dbDelete, cacheKey, nil)
		return nil, false, nil
	}
	if nil != err {
		return nil, false, &fault.StorageError{Op: "get", Err: err}
	}

	s.cache.Set(dbPut, cacheKey, value)
	return append([]byte(nil), value...), true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	_, present, err := p.Get(key)
	return present, err
}

// ApplyBatch - write all mutations or none of them
//
// later mutations of the same key override earlier ones
func (p *PoolHandle) ApplyBatch(mutations []Mutation) error {
	if 0 == len(mutations) {
		return nil
	}

	batch := new(leveldb.Batch)
	prefixed := make([][]byte, len(mutations))
	for i, m := range mutations {
		if 0 == len(m.Key) {
			return fault.ErrEmptyKey
		}
		prefixed[i] = p.prefixKey(m.Key)
		if m.Delete {
			batch.Delete(prefixed[i])
		} else {
			batch.Put(prefixed[i], m.Value)
		}
	}

	s := p.store
	s.Lock()
	defer s.Unlock()

	if nil == s.access {
		return fault.ErrDatabaseIsNotSet
	}

	if err := s.access.Write(batch); nil != err {
		s.log.Errorf("batch of: %d write error: %s", len(mutations), err)
		return &fault.StorageError{Op: "write", Err: err}
	}

	for i, m := range mutations {
		if m.Delete {
			s.cache.Set(dbDelete, string(prefixed[i]), nil)
		} else {
			s.cache.Set(dbPut, string(prefixed[i]), m.Value)
		}
	}
	s.log.Debugf("batch of: %d written", len(mutations))
	return nil
}
