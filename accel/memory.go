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
	"fmt"
	"sort"
	"sync"
)

const floatSize = 4

// Buffer is a region of global memory holding float32 values.
//
// Host code moves data in and out with CopyFromHost and CopyToHost; kernels
// read and write it through Slice. A Buffer must be released with Free,
// which is idempotent so it can be deferred right after allocation.
type Buffer struct {
	dev  *Device
	mu   sync.Mutex
	data []float32
}

// Malloc allocates n float32 values of global memory.
func (d *Device) Malloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: allocation of %d elements", ErrLaunchRejected, n)
	}
	bytes := int64(n) * floatSize

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if d.globalUsed+bytes > d.props.GlobalMemSize {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrOutOfMemory, bytes, d.globalUsed, d.props.GlobalMemSize)
	}
	d.globalUsed += bytes
	return &Buffer{dev: d, data: make([]float32, n)}, nil
}

// Len returns the number of elements, or 0 after Free.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// CopyFromHost copies src into the buffer. len(src) must equal Len.
func (b *Buffer) CopyFromHost(src []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return ErrFreed
	}
	if len(src) != len(b.data) {
		return fmt.Errorf("%w: host %d, device %d", ErrSizeMismatch, len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

// CopyToHost copies the buffer into dst. len(dst) must equal Len.
func (b *Buffer) CopyToHost(dst []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return ErrFreed
	}
	if len(dst) != len(b.data) {
		return fmt.Errorf("%w: host %d, device %d", ErrSizeMismatch, len(dst), len(b.data))
	}
	copy(dst, b.data)
	return nil
}

// Slice returns the device view of the buffer for use inside a kernel.
// It returns nil after Free; a kernel indexing it then faults.
func (b *Buffer) Slice() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Free releases the buffer. Calling Free more than once is safe.
func (b *Buffer) Free() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return
	}
	b.dev.releaseGlobal(int64(len(b.data)) * floatSize)
	b.data = nil
}

func (d *Device) releaseGlobal(bytes int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.globalUsed -= bytes
}

// ConstBuffer is a symbol in the device's constant bank.
//
// The bank is a single fixed-size array shared by every launch on the
// device, so symbols are carved out of it with a first-fit allocator and
// concurrent launches never overlap.
type ConstBuffer struct {
	dev    *Device
	mu     sync.Mutex
	offset int
	n      int
	freed  bool
}

// span is an allocated [offset, offset+n) range of the constant bank.
type span struct {
	offset, n int
}

// AllocConstant reserves n float32 values of constant memory.
func (d *Device) AllocConstant(n int) (*ConstBuffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: constant symbol of %d elements", ErrLaunchRejected, n)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}

	offset := 0
	for _, s := range d.constSpans {
		if s.offset-offset >= n {
			break
		}
		offset = s.offset + s.n
	}
	if offset+n > len(d.constBank) {
		return nil, fmt.Errorf("%w: %d bytes requested, bank is %d bytes",
			ErrConstantOverflow, n*floatSize, len(d.constBank)*floatSize)
	}

	d.constSpans = append(d.constSpans, span{offset: offset, n: n})
	sort.Slice(d.constSpans, func(i, j int) bool {
		return d.constSpans[i].offset < d.constSpans[j].offset
	})
	return &ConstBuffer{dev: d, offset: offset, n: n}, nil
}

// Len returns the number of elements in the symbol.
func (c *ConstBuffer) Len() int {
	return c.n
}

// CopyFromHost writes src into the symbol. len(src) must equal Len.
// Must not be called while a launch reading the symbol is running.
func (c *ConstBuffer) CopyFromHost(src []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.freed {
		return ErrFreed
	}
	if len(src) != c.n {
		return fmt.Errorf("%w: host %d, constant %d", ErrSizeMismatch, len(src), c.n)
	}
	copy(c.dev.constBank[c.offset:c.offset+c.n], src)
	return nil
}

// Slice returns the read-only kernel view of the symbol, or nil after Free.
func (c *ConstBuffer) Slice() []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.freed {
		return nil
	}
	return c.dev.constBank[c.offset : c.offset+c.n : c.offset+c.n]
}

// Free returns the symbol to the bank. Calling Free more than once is safe.
func (c *ConstBuffer) Free() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.freed {
		return
	}
	c.freed = true
	c.dev.releaseConstant(c.offset)
}

func (d *Device) releaseConstant(offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.constSpans {
		if s.offset == offset {
			d.constSpans = append(d.constSpans[:i], d.constSpans[i+1:]...)
			return
		}
	}
}
