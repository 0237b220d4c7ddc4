// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Config - worker settings
type Config struct {
	Workers int `gluamapper:"workers"`
}

// Pipeline - the only way transactions change the ledger
type Pipeline struct {
	sync.RWMutex

	log       *logger.L
	view      ledger.StateView
	validator Validator
	executor  Executor
	committer Committer

	workers int
	queue   chan *job
	done    chan struct{}
	running *background.T

	// single writer
	commitLock sync.Mutex
}

type job struct {
	txn    *transaction.SignedTransaction
	commit bool
	reply  chan reply
}

type reply struct {
	output *engine.TransactionOutput
	err    error
}

// New - create a stopped pipeline, zero workers means one per CPU
func New(log *logger.L, config Config, view ledger.StateView, validator Validator, executor Executor, committer Committer) *Pipeline {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		log:       log,
		view:      view,
		validator: validator,
		executor:  executor,
		committer: committer,
		workers:   workers,
	}
}

// Start - launch the workers
func (p *Pipeline) Start() error {
	p.Lock()
	defer p.Unlock()

	if nil != p.running {
		return fault.ErrAlreadyInitialised
	}

	p.queue = make(chan *job)
	p.done = make(chan struct{})
	processes := make(background.Processes, p.workers)
	for i := range processes {
		processes[i] = &worker{id: i, pipeline: p}
	}
	p.running = background.Start(processes, p.log)

	p.log.Infof("started: %d workers", p.workers)
	return nil
}

// Stop - wait for the workers to finish their current jobs and exit
func (p *Pipeline) Stop() {
	p.Lock()
	running := p.running
	p.running = nil
	if nil != running {
		close(p.done)
	}
	p.Unlock()

	if nil == running {
		return
	}
	running.Stop()
	p.log.Info("stopped")
}

// Submit - validate, execute and commit one transaction
//
// returns the transaction hash once the commit is visible to readers,
// cancelling ctx stops the wait but not the work
func (p *Pipeline) Submit(ctx context.Context, txn *transaction.SignedTransaction) (transaction.Hash, error) {
	hash, err := txn.Hash()
	if nil != err {
		return transaction.Hash{}, fmt.Errorf("%s: %w", err, fault.ErrBadRequest)
	}

	if _, err := p.dispatch(ctx, txn, true); nil != err {
		return transaction.Hash{}, err
	}
	return hash, nil
}

// Simulate - validate and execute without committing
func (p *Pipeline) Simulate(ctx context.Context, txn *transaction.SignedTransaction) (*engine.TransactionOutput, error) {
	return p.dispatch(ctx, txn, false)
}

func (p *Pipeline) dispatch(ctx context.Context, txn *transaction.SignedTransaction, commit bool) (*engine.TransactionOutput, error) {
	j := &job{
		txn:    txn,
		commit: commit,
		reply:  make(chan reply, 1),
	}

	p.RLock()
	queue := p.queue
	done := p.done
	running := nil != p.running
	p.RUnlock()

	if !running {
		return nil, fault.ErrWorkersStopped
	}

	select {
	case queue <- j:
	case <-done:
		return nil, fault.ErrWorkersStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// a job taken by a worker is always answered

	select {
	case r := <-j.reply:
		return r.output, r.err
	case <-ctx.Done():
		p.log.Warnf("caller left before result: %s", ctx.Err())
		return nil, ctx.Err()
	}
}

// run one job on the calling worker
func (p *Pipeline) process(j *job) (output *engine.TransactionOutput, err error) {
	defer func() {
		if r := recover(); nil != r {
			p.log.Criticalf("worker panic: %v", r)
			output = nil
			err = fmt.Errorf("%v: %w", r, fault.ErrWorkerPanic)
		}
	}()

	code, err := p.validator.Validate(j.txn)
	if nil != err {
		p.log.Errorf("validate error: %s", err)
		return nil, err
	}
	if nil != code {
		p.log.Debugf("rejected: %s", code)
		return nil, &fault.RejectedError{Status: code.String()}
	}

	if !j.commit {
		return p.execute(j.txn)
	}

	p.commitLock.Lock()
	defer p.commitLock.Unlock()

	output, err = p.execute(j.txn)
	if nil != err {
		return nil, err
	}
	if !output.Status.Kept {
		p.log.Debugf("discarded: %s", output.Status)
		return nil, &fault.ExecutionError{Status: output.Status.String()}
	}
	if err := p.committer.Commit(output.WriteSet); nil != err {
		return nil, err
	}
	p.log.Debugf("committed: %s", output.Status)
	return output, nil
}

// execution is never cancelled once started
func (p *Pipeline) execute(txn *transaction.SignedTransaction) (*engine.TransactionOutput, error) {
	outputs, err := p.executor.ExecuteBlock(context.Background(), []*transaction.SignedTransaction{txn}, p.view)
	if nil != err {
		p.log.Errorf("execute error: %s", err)
		return nil, err
	}
	if 1 != len(outputs) {
		return nil, fmt.Errorf("outputs: %d: %w", len(outputs), fault.ErrWriteSetExecutionMissing)
	}
	return &outputs[0], nil
}
