// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/submission"
	"github.com/bitmark-inc/ledgerd/submission/mocks"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

type testMocks struct {
	ctl       *gomock.Controller
	validator *mocks.MockValidator
	executor  *mocks.MockExecutor
	committer *mocks.MockCommitter
}

func newTestPipeline(t *testing.T) (*submission.Pipeline, *testMocks) {
	ctl := gomock.NewController(t)
	m := &testMocks{
		ctl:       ctl,
		validator: mocks.NewMockValidator(ctl),
		executor:  mocks.NewMockExecutor(ctl),
		committer: mocks.NewMockCommitter(ctl),
	}
	p := submission.New(logger.New(fixtures.LogCategory), submission.Config{Workers: 2}, ledger.NewOverlay(nil), m.validator, m.executor, m.committer)
	assert.Nil(t, p.Start(), "start")
	return p, m
}

func testTransaction(t *testing.T) *transaction.SignedTransaction {
	key := account.DeterministicPrivateKey("pipeline", 0)
	txn, err := transaction.Sign(transaction.RawTransaction{
		Sender:                  key.Address(),
		Payload:                 transaction.Transfer{To: ledger.MustAddress("0xb0b"), Amount: 1},
		MaxGasAmount:            1000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 1 << 40,
		ChainID:                 4,
	}, key)
	assert.Nil(t, err, "sign")
	return txn
}

func kept(status engine.StatusCode) []engine.TransactionOutput {
	ws := ledger.NewWriteSet()
	ws.Put(ledger.RawKey([]byte("k")), ledger.Set(ledger.NewStateValue([]byte("v"))))
	return []engine.TransactionOutput{{WriteSet: ws, GasUsed: 9, Status: engine.Keep(status)}}
}

func TestSubmitCommits(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	txn := testTransaction(t)
	outputs := kept(engine.StatusExecuted)

	gomock.InOrder(
		m.validator.EXPECT().Validate(txn).Return(nil, nil),
		m.executor.EXPECT().ExecuteBlock(gomock.Any(), []*transaction.SignedTransaction{txn}, gomock.Any()).Return(outputs, nil),
		m.committer.EXPECT().Commit(outputs[0].WriteSet).Return(nil),
	)

	hash, err := p.Submit(context.Background(), txn)
	assert.Nil(t, err, "submit")
	expected, _ := txn.Hash()
	assert.Equal(t, expected, hash, "hash")
}

func TestSubmitRejected(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	code := engine.StatusSequenceNumberTooOld
	m.validator.EXPECT().Validate(gomock.Any()).Return(&code, nil)

	_, err := p.Submit(context.Background(), testTransaction(t))
	assert.True(t, fault.IsErrRejected(err), "rejected: %v", err)
	assert.Contains(t, err.Error(), "SEQUENCE_NUMBER_TOO_OLD", "reason")
}

func TestSubmitDiscarded(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	m.validator.EXPECT().Validate(gomock.Any()).Return(nil, nil)
	m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return([]engine.TransactionOutput{{
		WriteSet: ledger.NewWriteSet(),
		Status:   engine.Discard(engine.StatusSequenceNumberTooNew),
	}}, nil)

	_, err := p.Submit(context.Background(), testTransaction(t))
	assert.True(t, fault.IsErrExecution(err), "execution failure: %v", err)
}

func TestSubmitFailures(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	storageFailure := &fault.StorageError{Op: "write", Err: errors.New("disk")}
	engineFailure := errors.New("engine")

	m.validator.EXPECT().Validate(gomock.Any()).Return(nil, nil).Times(3)
	gomock.InOrder(
		m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(kept(engine.StatusExecuted), nil),
		m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, engineFailure),
		m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil),
	)
	m.committer.EXPECT().Commit(gomock.Any()).Return(storageFailure)

	_, err := p.Submit(context.Background(), testTransaction(t))
	assert.True(t, fault.IsErrStorage(err), "commit failure: %v", err)

	_, err = p.Submit(context.Background(), testTransaction(t))
	assert.Equal(t, engineFailure, err, "engine failure")

	_, err = p.Submit(context.Background(), testTransaction(t))
	assert.True(t, errors.Is(err, fault.ErrWriteSetExecutionMissing), "no output: %v", err)
}

func TestSubmitWorkerPanic(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	m.validator.EXPECT().Validate(gomock.Any()).DoAndReturn(func(*transaction.SignedTransaction) (*engine.StatusCode, error) {
		panic("corrupt state")
	})
	m.validator.EXPECT().Validate(gomock.Any()).Return(nil, nil)
	m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(kept(engine.StatusExecuted), nil)
	m.committer.EXPECT().Commit(gomock.Any()).Return(nil)

	_, err := p.Submit(context.Background(), testTransaction(t))
	assert.True(t, errors.Is(err, fault.ErrWorkerPanic), "panic: %v", err)

	// the worker survives
	_, err = p.Submit(context.Background(), testTransaction(t))
	assert.Nil(t, err, "after panic")
}

func TestSubmitAbandoned(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	release := make(chan struct{})
	committed := make(chan struct{})

	m.validator.EXPECT().Validate(gomock.Any()).Return(nil, nil)
	m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []*transaction.SignedTransaction, ledger.StateView) ([]engine.TransactionOutput, error) {
			<-release
			return kept(engine.StatusExecuted), nil
		})
	m.committer.EXPECT().Commit(gomock.Any()).DoAndReturn(func(*ledger.WriteSet) error {
		close(committed)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Submit(ctx, testTransaction(t))
	assert.Equal(t, context.DeadlineExceeded, err, "abandoned wait")

	close(release)
	select {
	case <-committed:
	case <-time.After(time.Second):
		t.Fatal("abandoned transaction was not committed")
	}
}

func TestSimulateDoesNotCommit(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()
	defer p.Stop()

	m.validator.EXPECT().Validate(gomock.Any()).Return(nil, nil)
	m.executor.EXPECT().ExecuteBlock(gomock.Any(), gomock.Any(), gomock.Any()).Return(kept(engine.StatusInsufficientBalanceOnTransfer), nil)

	output, err := p.Simulate(context.Background(), testTransaction(t))
	assert.Nil(t, err, "simulate")
	assert.Equal(t, engine.Keep(engine.StatusInsufficientBalanceOnTransfer), output.Status, "status")
}

func TestStopped(t *testing.T) {
	p, m := newTestPipeline(t)
	defer m.ctl.Finish()

	assert.Equal(t, fault.ErrAlreadyInitialised, p.Start(), "second start")
	p.Stop()
	p.Stop()

	_, err := p.Submit(context.Background(), testTransaction(t))
	assert.Equal(t, fault.ErrWorkersStopped, err, "stopped")
}
