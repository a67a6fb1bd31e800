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

import "sync"

// Barrier is a reusable rendezvous point for the lanes of one block.
//
// Wait blocks until every participating lane has arrived, then releases all
// of them together and resets for the next phase. A lane that exits calls
// Leave so the remaining lanes are not held waiting for it. A lane that
// faults calls Break, which releases every waiter with ErrBarrierBroken.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
	broken     bool
}

// NewBarrier returns a barrier for the given number of lanes.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all remaining parties have called Wait.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return ErrBarrierBroken
	}
	gen := b.generation
	b.waiting++
	if b.waiting >= b.parties {
		b.trip()
		return nil
	}
	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	if gen == b.generation {
		return ErrBarrierBroken
	}
	return nil
}

// Leave removes the caller from the set of parties. If every remaining party
// is already waiting, they are released.
func (b *Barrier) Leave() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.parties--
	if b.waiting > 0 && b.waiting >= b.parties {
		b.trip()
	}
}

// Break marks the barrier as broken and wakes every waiter.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.broken = true
	b.cond.Broadcast()
}

// trip releases the current generation. Caller holds b.mu.
func (b *Barrier) trip() {
	b.waiting = 0
	b.generation++
	b.cond.Broadcast()
}
