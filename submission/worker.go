// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submission

import (
	"github.com/bitmark-inc/logger"
)

type worker struct {
	id       int
	pipeline *Pipeline
}

// Run - process jobs until shutdown
func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {
	log := args.(*logger.L)
	log.Debugf("worker: %d starting", w.id)

	queue := w.pipeline.queue
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case j := <-queue:
			output, err := w.pipeline.process(j)
			j.reply <- reply{output: output, err: err}
		}
	}
	log.Debugf("worker: %d stopped", w.id)
}
