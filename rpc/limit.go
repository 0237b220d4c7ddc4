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

	"github.com/bitmark-inc/ledgerd/fault"
)

// requests allowed above the steady rate
const requestBurst = 10

// limiting for a single request
func limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

func newLimiter(requestRate float64) *rate.Limiter {
	if requestRate <= 0 {
		return rate.NewLimiter(rate.Inf, requestBurst)
	}
	return rate.NewLimiter(rate.Limit(requestRate), requestBurst)
}

// wrap a handler with the connection and rate limits
func (h *handler) limited(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		if !h.connections.IncrementBelow(h.maximumConnections) {
			h.log.Warnf("%s: %s", r.RemoteAddr, fault.ErrTooManyConnections)
			sendTooManyRequests(w)
			return
		}
		defer h.connections.Decrement()

		if err := limit(h.limiter); nil != err {
			h.log.Warnf("%s: %s", r.RemoteAddr, err)
			sendTooManyRequests(w)
			return
		}
		next(w, r, params)
	}
}
