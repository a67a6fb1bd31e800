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
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Dim3 is a three-dimensional extent or index.
type Dim3 struct {
	X, Y, Z int
}

// Dim2 returns a Dim3 with Z set to 1.
func Dim2(x, y int) Dim3 {
	return Dim3{X: x, Y: y, Z: 1}
}

// Size returns X*Y*Z.
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}

func (d Dim3) positive() bool {
	return d.X > 0 && d.Y > 0 && d.Z > 0
}

func (d Dim3) fits(limit Dim3) bool {
	return d.X <= limit.X && d.Y <= limit.Y && d.Z <= limit.Z
}

// String formats the extent as XxYxZ.
func (d Dim3) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// linearTo3D converts a linear index into coordinates within dim, X fastest.
func linearTo3D(i int, dim Dim3) Dim3 {
	return Dim3{
		X: i % dim.X,
		Y: (i / dim.X) % dim.Y,
		Z: i / (dim.X * dim.Y),
	}
}

// LaunchConfig describes the shape of a kernel launch.
type LaunchConfig struct {
	Grid      Dim3 // blocks in the grid
	Block     Dim3 // lanes per block
	SharedMem int  // float32 elements of shared memory per block
}

// KernelFunc is the body executed by every lane of a launch.
// A lane faults by panicking, for example on an out-of-range index.
type KernelFunc func(t *Thread)

// Thread is the execution context of one lane.
type Thread struct {
	BlockIdx  Dim3
	ThreadIdx Dim3
	BlockDim  Dim3
	GridDim   Dim3

	shared  []float32
	barrier *Barrier
}

// Shared returns the block's shared memory.
func (t *Thread) Shared() []float32 {
	return t.shared
}

// SyncThreads blocks until every live lane of the block has reached a
// SyncThreads call. Writes to shared memory made before the call are
// visible to every lane after it.
func (t *Thread) SyncThreads() {
	if err := t.barrier.Wait(); err != nil {
		panic(errBarrierUnwind)
	}
}

// GlobalX returns BlockIdx.X*BlockDim.X + ThreadIdx.X.
func (t *Thread) GlobalX() int {
	return t.BlockIdx.X*t.BlockDim.X + t.ThreadIdx.X
}

// GlobalY returns BlockIdx.Y*BlockDim.Y + ThreadIdx.Y.
func (t *Thread) GlobalY() int {
	return t.BlockIdx.Y*t.BlockDim.Y + t.ThreadIdx.Y
}

// LinearThread returns the lane index within its block, X fastest.
func (t *Thread) LinearThread() int {
	return (t.ThreadIdx.Z*t.BlockDim.Y+t.ThreadIdx.Y)*t.BlockDim.X + t.ThreadIdx.X
}

// errBarrierUnwind is the panic value used to unwind lanes blocked on a
// broken barrier. It is recovered and never escapes the device.
var errBarrierUnwind = errors.New("accel: unwind from broken barrier")

// Validate checks cfg against the device limits.
func (d *Device) Validate(cfg LaunchConfig) error {
	switch {
	case !cfg.Grid.positive():
		return fmt.Errorf("%w: grid %v has a zero dimension", ErrLaunchRejected, cfg.Grid)
	case !cfg.Block.positive():
		return fmt.Errorf("%w: block %v has a zero dimension", ErrLaunchRejected, cfg.Block)
	case !cfg.Grid.fits(d.props.MaxGridDim):
		return fmt.Errorf("%w: grid %v exceeds %v", ErrLaunchRejected, cfg.Grid, d.props.MaxGridDim)
	case !cfg.Block.fits(d.props.MaxBlockDim):
		return fmt.Errorf("%w: block %v exceeds %v", ErrLaunchRejected, cfg.Block, d.props.MaxBlockDim)
	case cfg.Block.Size() > d.props.MaxThreadsPerBlock:
		return fmt.Errorf("%w: %d threads per block, limit %d",
			ErrLaunchRejected, cfg.Block.Size(), d.props.MaxThreadsPerBlock)
	case cfg.SharedMem < 0 || cfg.SharedMem*floatSize > d.props.SharedMemPerBlock:
		return fmt.Errorf("%w: %d bytes of shared memory, limit %d",
			ErrLaunchRejected, cfg.SharedMem*floatSize, d.props.SharedMemPerBlock)
	}
	return nil
}

// Launch runs kernel over the grid and returns when every block finished.
//
// Blocks are distributed over the multiprocessors with no ordering
// guarantee. Within a block every lane runs on its own goroutine so lanes can
// meet at SyncThreads. If any lane faults, the remaining lanes of its block
// are released from the barrier, blocks not yet started are skipped and the
// first fault is returned wrapped in ErrExecutionFailed. A launch cannot be
// cancelled once started.
func (d *Device) Launch(cfg LaunchConfig, kernel KernelFunc) error {
	if kernel == nil {
		return fmt.Errorf("%w: nil kernel", ErrLaunchRejected)
	}
	if err := d.Validate(cfg); err != nil {
		return err
	}

	d.launches.RLock()
	defer d.launches.RUnlock()
	if d.isClosed() {
		return ErrDeviceClosed
	}

	var (
		faultOnce sync.Once
		fault     error
		faulted   = make(chan struct{})
	)
	d.sched.run(cfg.Grid.Size(), func(i int) {
		select {
		case <-faulted:
			return
		default:
		}
		if err := d.runBlock(cfg, linearTo3D(i, cfg.Grid), kernel); err != nil {
			faultOnce.Do(func() {
				fault = err
				close(faulted)
			})
		}
	})
	return fault
}

// runBlock executes every lane of one block. Lanes are not limited in
// concurrency: a barrier only trips once every live lane has arrived.
func (d *Device) runBlock(cfg LaunchConfig, blockIdx Dim3, kernel KernelFunc) error {
	shared := d.getScratch(cfg.SharedMem)
	defer d.putScratch(shared)

	lanes := cfg.Block.Size()
	barrier := NewBarrier(lanes)

	var g errgroup.Group
	for lane := range lanes {
		t := &Thread{
			BlockIdx:  blockIdx,
			ThreadIdx: linearTo3D(lane, cfg.Block),
			BlockDim:  cfg.Block,
			GridDim:   cfg.Grid,
			shared:    shared,
			barrier:   barrier,
		}
		g.Go(func() error {
			return runLane(t, kernel)
		})
	}
	return g.Wait()
}

// runLane runs kernel for one lane and converts a panic into an error.
// Lanes unwound by a broken barrier report nil so the lane that caused the
// fault is the one surfaced by the errgroup.
func runLane(t *Thread, kernel KernelFunc) (err error) {
	defer func() {
		r := recover()
		switch {
		case r == nil:
			t.barrier.Leave()
		case r == errBarrierUnwind:
			err = nil
		default:
			t.barrier.Break()
			err = fmt.Errorf("%w: block %v thread %v: %v",
				ErrExecutionFailed, t.BlockIdx, t.ThreadIdx, r)
		}
	}()
	kernel(t)
	return nil
}
