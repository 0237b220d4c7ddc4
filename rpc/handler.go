// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// largest request body accepted
const maximumBodyBytes = 1 << 20

// the argument passed to the handlers
type handler struct {
	log        *logger.L
	ledger     Ledger
	submitter  Submitter
	statistics Statistics
	version    string
	start      time.Time

	connections        counter.Counter
	maximumConnections uint64
	limiter            *rate.Limiter
}

func newHandler(log *logger.L, version string, l Ledger, s Submitter, statistics Statistics, maximumConnections uint64, requestRate float64) *handler {
	return &handler{
		log:                log,
		ledger:             l,
		submitter:          s,
		statistics:         statistics,
		version:            version,
		start:              time.Now(),
		maximumConnections: maximumConnections,
		limiter:            newLimiter(requestRate),
	}
}

func (h *handler) router() http.Handler {
	router := httprouter.New()

	router.GET("/rpc/v1/transactions/chain_id", h.limited(h.chainID))
	router.POST("/rpc/v1/transactions/submit", h.limited(h.submit))
	router.POST("/rpc/v1/transactions/simulate", h.limited(h.simulate))
	router.GET("/rpc/v1/accounts/:address", h.limited(h.account))
	router.GET("/rpc/v1/status", h.limited(h.status))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendNotFound(w)
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendMethodNotAllowed(w)
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		h.log.Criticalf("%s %s panic: %v", r.Method, r.URL.Path, v)
		sendInternalServerError(w)
	}
	return router
}

// every failure leaves as a 500 carrying the original message
func (h *handler) sendFailure(w http.ResponseWriter, r *http.Request, err error) {
	err = fault.Internal(err)
	h.log.Infof("%s %s: %s", r.Method, r.URL.Path, err)
	sendError(w, err.Error(), http.StatusInternalServerError)
}

func (h *handler) chainID(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resource, err := h.ledger.ChainResource()
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}
	if nil == resource {
		h.sendFailure(w, r, fault.ErrChainResourceMissing)
		return
	}
	sendReply(w, resource.ID)
}

func (h *handler) readTransaction(w http.ResponseWriter, r *http.Request) (*transaction.SignedTransaction, bool) {
	txn, err := transaction.ReadEnvelope(http.MaxBytesReader(w, r.Body, maximumBodyBytes))
	if nil != err {
		h.sendFailure(w, r, err)
		return nil, false
	}
	return txn, true
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	txn, ok := h.readTransaction(w, r)
	if !ok {
		return
	}

	hash, err := h.submitter.Submit(r.Context(), txn)
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}
	h.log.Debugf("submitted: %s", hash)
	sendReply(w, hash)
}

type simulateReply struct {
	Status       engine.ExecutionStatus `json:"status"`
	GasUsed      uint64                 `json:"gas_used"`
	WriteSetSize int                    `json:"write_set_size"`
}

func (h *handler) simulate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	txn, ok := h.readTransaction(w, r)
	if !ok {
		return
	}

	output, err := h.submitter.Simulate(r.Context(), txn)
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}
	sendReply(w, simulateReply{
		Status:       output.Status,
		GasUsed:      output.GasUsed,
		WriteSetSize: output.WriteSet.Len(),
	})
}

func (h *handler) account(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	address, err := ledger.AddressFromHex(params.ByName("address"))
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}

	state, err := h.ledger.Account(address)
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}
	if nil == state {
		sendError(w, fault.ErrUnknownAccount.Error(), http.StatusNotFound)
		return
	}
	sendReply(w, state)
}

type statusReply struct {
	Chain        string          `json:"chain"`
	ChainID      uint8           `json:"chain_id"`
	Version      string          `json:"version"`
	Uptime       string          `json:"uptime"`
	Connections  uint64          `json:"connections"`
	Transactions engine.Counters `json:"transactions"`
}

func (h *handler) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reply := statusReply{
		Version:     h.version,
		Uptime:      time.Since(h.start).Round(time.Second).String(),
		Connections: h.connections.Uint64(),
	}

	resource, err := h.ledger.ChainResource()
	if nil != err {
		h.sendFailure(w, r, err)
		return
	}
	if nil != resource {
		reply.ChainID = resource.ID
		reply.Chain = chain.Name(resource.ID)
	}
	if nil != h.statistics {
		reply.Transactions = h.statistics.Counters()
	}
	sendReply(w, reply)
}
