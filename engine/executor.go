// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// TransactionOutput - the effect of one transaction
type TransactionOutput struct {
	WriteSet *ledger.WriteSet
	GasUsed  uint64
	Status   ExecutionStatus
}

// BlockExecutor - runs ordered transactions against a view
type BlockExecutor struct {
	concurrency int64
	clock       Clock
}

// DefaultConcurrency - half the CPUs, at least one
func DefaultConcurrency() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		return 1
	}
	return n
}

// NewBlockExecutor - concurrency bounds parallel signature checks,
// zero or less selects DefaultConcurrency, a nil clock means time.Now
func NewBlockExecutor(concurrency int, clock Clock) *BlockExecutor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency()
	}
	if nil == clock {
		clock = time.Now
	}
	return &BlockExecutor{
		concurrency: int64(concurrency),
		clock:       clock,
	}
}

// ExecuteBlock - execute transactions in order, each one seeing the
// kept effects of those before it
//
// the view is never modified, one output is returned per transaction
func (e *BlockExecutor) ExecuteBlock(ctx context.Context, txns []*transaction.SignedTransaction, view ledger.StateView) ([]TransactionOutput, error) {
	verified, err := e.verifySignatures(ctx, txns)
	if nil != err {
		return nil, err
	}

	env, err := loadEnvironment(view)
	if nil != err {
		return nil, err
	}

	now := e.clock()
	overlay := ledger.NewOverlay(view)
	outputs := make([]TransactionOutput, len(txns))

	for i, txn := range txns {
		if !verified[i] {
			outputs[i] = TransactionOutput{
				WriteSet: ledger.NewWriteSet(),
				Status:   Discard(StatusInvalidSignature),
			}
			continue
		}
		output, err := execute(env, txn, overlay, now)
		if nil != err {
			return nil, err
		}
		if output.Status.Kept {
			overlay.Apply(output.WriteSet)
		}
		outputs[i] = output
	}
	return outputs, nil
}

// signatures are independent of state so they are checked in parallel
func (e *BlockExecutor) verifySignatures(ctx context.Context, txns []*transaction.SignedTransaction) ([]bool, error) {
	verified := make([]bool, len(txns))
	sem := semaphore.NewWeighted(e.concurrency)
	g, groupCtx := errgroup.WithContext(ctx)

	for i, txn := range txns {
		if err := sem.Acquire(groupCtx, 1); nil != err {
			break
		}
		i, txn := i, txn
		g.Go(func() error {
			defer sem.Release(1)
			verified[i] = nil == txn.CheckSignature()
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return nil, err
	}
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	return verified, nil
}

// run one verified transaction on the overlay
func execute(env *environment, txn *transaction.SignedTransaction, view ledger.StateView, now time.Time) (TransactionOutput, error) {
	ws := ledger.NewWriteSet()

	code, s, err := prologue(env, txn, view, now)
	if nil != err {
		return TransactionOutput{}, err
	}
	if nil != code {
		return TransactionOutput{WriteSet: ws, Status: Discard(*code)}, nil
	}

	raw := &txn.Raw
	gasUsed := env.gas.TransferGasUnits
	result := StatusExecuted
	if raw.MaxGasAmount < gasUsed {
		gasUsed = raw.MaxGasAmount
		result = StatusOutOfGas
	}
	// prologue guarantees max gas × price fits and is covered
	fee := gasUsed * raw.GasUnitPrice

	transfer := transferPayload(raw.Payload)
	senderBalance := s.coins.Value - fee

	if StatusExecuted == result && transfer.To != raw.Sender {
		var recipientAccount AccountResource
		recipientExists, err := ReadResource(view, transfer.To, &recipientAccount)
		if nil != err {
			return TransactionOutput{}, err
		}
		var recipientCoins CoinStore
		if _, err := ReadResource(view, transfer.To, &recipientCoins); nil != err {
			return TransactionOutput{}, err
		}

		switch {
		case senderBalance < transfer.Amount:
			result = StatusInsufficientBalanceOnTransfer
		case recipientCoins.Value+transfer.Amount < recipientCoins.Value:
			result = StatusAborted
		default:
			senderBalance -= transfer.Amount
			recipientCoins.Value += transfer.Amount
			if !recipientExists {
				recipientAccount = AccountResource{
					AuthenticationKey: transfer.To,
				}
				WriteResource(ws, transfer.To, &recipientAccount)
			}
			WriteResource(ws, transfer.To, &recipientCoins)
		}
	} else if StatusExecuted == result && senderBalance < transfer.Amount {
		result = StatusInsufficientBalanceOnTransfer
	}

	// the sender always pays and advances, whatever happened to the payload
	s.account.SequenceNumber += 1
	s.coins.Value = senderBalance
	WriteResource(ws, raw.Sender, &s.account)
	WriteResource(ws, raw.Sender, &s.coins)

	return TransactionOutput{
		WriteSet: ws,
		GasUsed:  gasUsed,
		Status:   Keep(result),
	}, nil
}

func transferPayload(p transaction.Payload) transaction.Transfer {
	switch t := p.(type) {
	case transaction.Transfer:
		return t
	case *transaction.Transfer:
		return *t
	}
	return transaction.Transfer{}
}
