// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// DefaultCacheSize - block cache used when no size is configured
const DefaultCacheSize = 100 * ldb_opt.MiB

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	LedgerState *PoolHandle `prefix:"S"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// Store - an open database and its pools
type Store struct {
	sync.RWMutex

	log    *logger.L
	path   string
	access DataAccess
	cache  Cache

	// Pool - the set of exported pools
	Pool pools
}

// Open - open or create the database at path
//
// cacheSize is the block cache in bytes, zero selects DefaultCacheSize
func Open(log *logger.L, path string, cacheSize int) (*Store, error) {
	db, err := leveldb.OpenFile(path, options(cacheSize))
	if nil != err {
		return nil, &fault.StorageError{Op: "open", Err: err}
	}
	log.Infof("open: %q  block cache: %d bytes", path, effectiveCacheSize(cacheSize))
	return setup(log, path, newDA(db), newCache())
}

// OpenInMemory - a database that vanishes on Close
func OpenInMemory(log *logger.L, cacheSize int) (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), options(cacheSize))
	if nil != err {
		return nil, &fault.StorageError{Op: "open", Err: err}
	}
	return setup(log, ":memory:", newDA(db), newCache())
}

func effectiveCacheSize(cacheSize int) int {
	if cacheSize <= 0 {
		return DefaultCacheSize
	}
	return cacheSize
}

func options(cacheSize int) *ldb_opt.Options {
	return &ldb_opt.Options{
		BlockCacheCapacity: effectiveCacheSize(cacheSize),
		ErrorIfExist:       false,
		ErrorIfMissing:     false,
	}
}

// check the version record and initialise every pool
func setup(log *logger.L, path string, access DataAccess, cache Cache) (*Store, error) {
	ok := false
	defer func() {
		if !ok {
			access.Close()
		}
	}()

	version, err := getVersion(access)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d: %w", version, currentDBVersion, fault.ErrIncompatibleVersion)
	}

	if 0 == version {
		// database was empty so tag as current version
		batch := new(leveldb.Batch)
		batch.Put(versionKey, versionBytes(currentDBVersion))
		if err := access.Write(batch); nil != err {
			return nil, &fault.StorageError{Op: "version", Err: err}
		}
		log.Infof("new database version: %d", currentDBVersion)
	}

	s := &Store{
		log:    log,
		path:   path,
		access: access,
		cache:  cache,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) || 0x00 == prefixTag[0] {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
			store:  s,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return s, nil
}

// Close - release the database, further access fails
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.access {
		return nil
	}
	err := s.access.Close()
	s.access = nil
	s.cache.Clear()
	s.log.Info("closed")
	return err
}

// Path - where the database lives
func (s *Store) Path() string {
	return s.path
}

func getVersion(access DataAccess) (int, error) {
	versionValue, err := access.Get(versionKey)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, &fault.StorageError{Op: "version", Err: err}
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d: %w", 4, len(versionValue), fault.ErrIncompatibleVersion)
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func versionBytes(version int) []byte {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return currentVersion
}
