// Copyright 2025 go-convolve Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package accel

import (
	"sync"
	"sync/atomic"
)

// scheduler models the device's multiprocessors: a fixed set of persistent
// workers that pull block indices from a shared counter. Blocks therefore run
// concurrently and in no particular order, and a block never waits on
// another block.
type scheduler struct {
	numSMs    int
	workC     chan blockBatch
	closeOnce sync.Once
}

// blockBatch hands one multiprocessor the loop that drains a launch's
// block counter.
type blockBatch struct {
	fn      func()
	barrier *sync.WaitGroup
}

func newScheduler(numSMs int) *scheduler {
	s := &scheduler{
		numSMs: numSMs,
		// Buffer enough for two concurrent launches to queue without blocking.
		workC: make(chan blockBatch, numSMs*2),
	}
	for range numSMs {
		go s.multiprocessor()
	}
	return s
}

func (s *scheduler) multiprocessor() {
	for item := range s.workC {
		item.fn()
		item.barrier.Done()
	}
}

func (s *scheduler) close() {
	s.closeOnce.Do(func() {
		close(s.workC)
	})
}

// run executes block(i) for every i in [0, numBlocks) and returns once all
// of them have finished. Multiprocessors grab the next block index
// atomically, which balances uneven blocks such as partial edge tiles.
func (s *scheduler) run(numBlocks int, block func(i int)) {
	if numBlocks <= 0 {
		return
	}

	sms := min(s.numSMs, numBlocks)
	if sms == 1 {
		for i := range numBlocks {
			block(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(sms)
	for range sms {
		s.workC <- blockBatch{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= numBlocks {
						return
					}
					block(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
