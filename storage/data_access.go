// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// DataAccess - the primitive database operations a store needs
type DataAccess interface {
	Get([]byte) ([]byte, error)
	Write(*leveldb.Batch) error
	Close() error
}

type DataAccessImpl struct {
	db           *leveldb.DB
	writeOptions *ldb_opt.WriteOptions
}

func newDA(db *leveldb.DB) DataAccess {
	return &DataAccessImpl{
		db:           db,
		writeOptions: &ldb_opt.WriteOptions{Sync: true},
	}
}

func (d *DataAccessImpl) Get(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *DataAccessImpl) Write(batch *leveldb.Batch) error {
	return d.db.Write(batch, d.writeOptions)
}

func (d *DataAccessImpl) Close() error {
	return d.db.Close()
}
