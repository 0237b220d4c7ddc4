// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vmpool

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

type slot struct {
	sync.Mutex
	vm *engine.VM
}

// Pool - execution contexts bound to one view
type Pool struct {
	log   *logger.L
	view  ledger.StateView
	slots []*slot

	randomLock sync.Mutex
	random     *rand.Rand
}

// Handle - exclusive use of one execution context until released
type Handle struct {
	slot    *slot
	release sync.Once
}

// New - create size contexts, zero or less means one per CPU
//
// the number of contexts never changes
func New(log *logger.L, view ledger.StateView, size int, clock engine.Clock) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	slots := make([]*slot, size)
	for i := range slots {
		slots[i] = &slot{vm: engine.NewVM(clock)}
	}

	log.Infof("execution contexts: %d", size)
	return &Pool{
		log:    log,
		view:   view,
		slots:  slots,
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Size - number of contexts
func (p *Pool) Size() int {
	return len(p.slots)
}

// View - the state every context reads
func (p *Pool) View() ledger.StateView {
	return p.view
}

// Acquire - lock a randomly chosen context
//
// blocks while another holder has that context
func (p *Pool) Acquire() *Handle {
	p.randomLock.Lock()
	n := p.random.Intn(len(p.slots))
	p.randomLock.Unlock()

	s := p.slots[n]
	s.Lock()
	return &Handle{slot: s}
}

// VM - the held context
func (h *Handle) VM() *engine.VM {
	return h.slot.vm
}

// Release - return the context, further calls do nothing
func (h *Handle) Release() {
	h.release.Do(h.slot.Unlock)
}

// Do - run fn with a context that is released however fn returns
func (p *Pool) Do(fn func(vm *engine.VM) error) error {
	h := p.Acquire()
	defer h.Release()
	return fn(h.VM())
}

// Validate - check a transaction with any free context
func (p *Pool) Validate(txn *transaction.SignedTransaction) (*engine.StatusCode, error) {
	var code *engine.StatusCode
	err := p.Do(func(vm *engine.VM) error {
		var err error
		code, err = vm.ValidateTransaction(txn, p.view)
		return err
	})
	return code, err
}

// Counters - totals over every context
func (p *Pool) Counters() engine.Counters {
	total := engine.Counters{}
	for _, s := range p.slots {
		s.Lock()
		c := s.vm.Counters()
		s.Unlock()
		total.Accepted += c.Accepted
		total.Rejected += c.Rejected
	}
	return total
}
