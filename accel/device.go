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
)

// Device is a simulated SIMT accelerator backed by host goroutines.
//
// A Device is safe for concurrent use: several launches may run at once and
// share the multiprocessors, the global memory budget and the constant bank.
type Device struct {
	props Properties
	sched *scheduler

	// launches holds a read lock for the duration of every launch so Close
	// waits for in-flight work before stopping the multiprocessors.
	launches sync.RWMutex

	mu         sync.Mutex // guards the fields below
	closed     bool
	globalUsed int64
	constBank  []float32
	constSpans []span

	scratch sync.Pool // []float32 block-shared memory, reused without clearing
}

// NewDevice creates a device with the given limits.
func NewDevice(props Properties) (*Device, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Device{
		props:     props,
		sched:     newScheduler(props.MultiProcessors),
		constBank: make([]float32, props.ConstantMemSize/floatSize),
	}, nil
}

var defaultDevice = sync.OnceValue(func() *Device {
	d, err := NewDevice(DetectProperties())
	if err != nil {
		// DetectProperties only yields positive limits.
		panic(err)
	}
	return d
})

// Default returns the process-wide device built from DetectProperties.
// It is created on first use and must not be closed.
func Default() *Device {
	return defaultDevice()
}

// Properties returns the device limits.
func (d *Device) Properties() Properties {
	return d.props
}

// Allocated returns the bytes of global memory and the float32 elements of
// constant memory currently allocated.
func (d *Device) Allocated() (globalBytes int64, constElems int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.constSpans {
		constElems += s.n
	}
	return d.globalUsed, constElems
}

// Close waits for running launches and stops the device. Later allocations
// and launches fail with ErrDeviceClosed. Calling Close more than once is
// safe.
func (d *Device) Close() {
	d.launches.Lock()
	defer d.launches.Unlock()

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.sched.close()
}

func (d *Device) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// getScratch returns a shared-memory array of n elements. Contents are
// whatever the previous block left behind, like real shared memory.
func (d *Device) getScratch(n int) []float32 {
	if n == 0 {
		return nil
	}
	if v, ok := d.scratch.Get().(*[]float32); ok && cap(*v) >= n {
		return (*v)[:n]
	}
	return make([]float32, n)
}

func (d *Device) putScratch(s []float32) {
	if s == nil {
		return
	}
	d.scratch.Put(&s)
}
