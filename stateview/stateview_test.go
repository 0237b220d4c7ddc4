// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stateview_test

import (
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/stateview"
	"github.com/bitmark-inc/ledgerd/stateview/mocks"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func newTestStore(t *testing.T) (*storage.Store, *stateview.View, *stateview.Committer) {
	s, err := storage.OpenInMemory(logger.New(fixtures.LogCategory), 0)
	assert.Nil(t, err, "open")
	log := logger.New(fixtures.LogCategory)
	return s, stateview.New(log, s.Pool.LedgerState), stateview.NewCommitter(log, s.Pool.LedgerState)
}

func read(t *testing.T, view ledger.StateView, key ledger.StateKey) *ledger.StateValue {
	v, err := view.GetStateValue(key)
	assert.Nil(t, err, "read: %s", key)
	return v
}

func TestCommitFrame(t *testing.T) {
	s, view, committer := newTestStore(t)
	defer s.Close()

	a := ledger.ResourceKey(ledger.MustAddress("0xa"), "0x1::test::A")
	b := ledger.ModuleKey(ledger.MustAddress("0xb"), "b")
	c := ledger.RawKey([]byte("untouched"))

	first := ledger.NewWriteSet()
	first.Put(a, ledger.Set(ledger.NewStateValue([]byte("one"))))
	first.Put(b, ledger.Set(ledger.NewStateValue([]byte("two"))))
	first.Put(c, ledger.Set(&ledger.StateValue{
		Bytes:    []byte("three"),
		Metadata: &ledger.ValueMetadata{Deposit: 7, CreationTimeUsecs: 99},
	}))
	assert.Nil(t, committer.Commit(first), "first commit")

	second := ledger.NewWriteSet()
	second.Put(a, ledger.Set(ledger.NewStateValue([]byte("uno"))))
	second.Put(b, ledger.Deletion())
	assert.Nil(t, committer.Commit(second), "second commit")

	assert.Equal(t, []byte("uno"), read(t, view, a).Bytes, "set key")
	assert.Nil(t, read(t, view, b), "deleted key")

	untouched := read(t, view, c)
	if assert.NotNil(t, untouched, "untouched key lost") {
		assert.Equal(t, []byte("three"), untouched.Bytes, "untouched bytes")
		assert.Equal(t, uint64(7), untouched.Metadata.Deposit, "untouched metadata")
	}

	assert.Nil(t, read(t, view, ledger.RawKey([]byte("never written"))), "absent key")
}

func TestCommitEncodeFailureAppliesNothing(t *testing.T) {
	s, view, committer := newTestStore(t)
	defer s.Close()

	a := ledger.RawKey([]byte("a"))
	b := ledger.RawKey([]byte("b"))

	ws := ledger.NewWriteSet()
	ws.Put(a, ledger.Set(ledger.NewStateValue([]byte("before"))))
	assert.Nil(t, committer.Commit(ws), "setup")

	ws = ledger.NewWriteSet()
	ws.Put(a, ledger.Set(ledger.NewStateValue([]byte("after"))))
	ws.Put(b, ledger.Set(ledger.NewStateValue(make([]byte, ledger.MaxValueBytes+1))))
	err := committer.Commit(ws)
	assert.True(t, fault.IsErrRecord(err), "encode error expected: %v", err)

	assert.Equal(t, []byte("before"), read(t, view, a).Bytes, "partial commit visible")
	assert.Nil(t, read(t, view, b), "partial commit visible")
}

func TestCommitIsOneBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	committer := stateview.NewCommitter(logger.New(fixtures.LogCategory), store)

	ws := ledger.NewWriteSet()
	ws.Put(ledger.RawKey([]byte("a")), ledger.Set(ledger.NewStateValue([]byte("1"))))
	ws.Put(ledger.RawKey([]byte("b")), ledger.Deletion())

	failure := &fault.StorageError{Op: "write", Err: errors.New("disk full")}
	store.EXPECT().ApplyBatch(gomock.Any()).DoAndReturn(func(m []storage.Mutation) error {
		assert.Equal(t, 2, len(m), "mutation count")
		assert.False(t, m[0].Delete, "set")
		assert.True(t, m[1].Delete, "delete")
		return failure
	}).Times(1)

	err := committer.Commit(ws)
	assert.True(t, fault.IsErrStorage(err), "storage error expected: %v", err)

	// an empty write set never reaches the store
	assert.Nil(t, committer.Commit(ledger.NewWriteSet()), "empty")
}

func TestReadDistinguishesDecodeFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	view := stateview.New(logger.New(fixtures.LogCategory), store)

	corrupt := ledger.RawKey([]byte("corrupt"))
	missing := ledger.RawKey([]byte("missing"))
	broken := ledger.RawKey([]byte("broken"))

	store.EXPECT().Get(corrupt.Encoded()).Return([]byte{0x7f}, true, nil)
	store.EXPECT().Get(missing.Encoded()).Return(nil, false, nil)
	store.EXPECT().Get(broken.Encoded()).Return(nil, false, &fault.StorageError{Op: "get", Err: errors.New("io")})

	_, err := view.GetStateValue(corrupt)
	assert.True(t, fault.IsErrRecord(err), "decode error expected: %v", err)

	v, err := view.GetStateValue(missing)
	assert.Nil(t, err, "missing is not an error")
	assert.Nil(t, v, "missing value")

	_, err = view.GetStateValue(broken)
	assert.True(t, fault.IsErrStorage(err), "storage error expected: %v", err)
}

func TestUsageIsUntracked(t *testing.T) {
	s, view, _ := newTestStore(t)
	defer s.Close()

	usage, err := view.GetUsage()
	assert.Nil(t, err, "usage")
	assert.Equal(t, ledger.Untracked, usage, "usage")
}

func TestChainResource(t *testing.T) {
	s, view, committer := newTestStore(t)
	defer s.Close()

	r, err := view.ChainResource()
	assert.Nil(t, err, "before genesis")
	assert.Nil(t, r, "resource before genesis")

	ws := ledger.NewWriteSet()
	engine.WriteResource(ws, ledger.CoreAddress, &engine.ChainIDResource{ID: 4})
	assert.Nil(t, committer.Commit(ws), "commit")

	r, err = view.ChainResource()
	assert.Nil(t, err, "after commit")
	if assert.NotNil(t, r, "resource after commit") {
		assert.Equal(t, uint8(4), r.ID, "chain id")
	}
}

func TestAccount(t *testing.T) {
	s, view, committer := newTestStore(t)
	defer s.Close()

	address := ledger.MustAddress("0xa11ce")
	a, err := view.Account(address)
	assert.Nil(t, err, "absent account")
	assert.Nil(t, a, "absent account")

	ws := ledger.NewWriteSet()
	engine.WriteResource(ws, address, &engine.AccountResource{AuthenticationKey: address, SequenceNumber: 3})
	engine.WriteResource(ws, address, &engine.CoinStore{Value: 12345})
	assert.Nil(t, committer.Commit(ws), "commit")

	a, err = view.Account(address)
	assert.Nil(t, err, "account")
	assert.Equal(t, &engine.AccountState{
		Address:           address,
		AuthenticationKey: address,
		SequenceNumber:    3,
		Balance:           12345,
	}, a, "account state")
}
