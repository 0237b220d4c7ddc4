// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/vmpool"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

func memstats(pool *vmpool.Pool, shutdown <-chan struct{}) {

	log := logger.New("memory")

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		s := m.Sys / mega
		log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, s)

		counters := pool.Counters()
		log.Infof("validated: %d  rejected: %d", counters.Accepted, counters.Rejected)

		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}
	}
}
