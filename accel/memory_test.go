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
	"testing"
)

func TestMalloc_Accounting(t *testing.T) {
	d := newTestDevice(t)

	a, err := d.Malloc(100)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	b, err := d.Malloc(50)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	if got, _ := d.Allocated(); got != 600 {
		t.Errorf("Allocated: got %d bytes, want 600", got)
	}

	a.Free()
	a.Free()
	if got, _ := d.Allocated(); got != 200 {
		t.Errorf("Allocated after Free: got %d bytes, want 200", got)
	}
	b.Free()
	if got, _ := d.Allocated(); got != 0 {
		t.Errorf("Allocated after all Free: got %d bytes, want 0", got)
	}
	if a.Len() != 0 {
		t.Errorf("Len after Free: got %d, want 0", a.Len())
	}
}

func TestMalloc_OutOfMemory(t *testing.T) {
	d := newTestDevice(t)

	limit := int(d.Properties().GlobalMemSize / floatSize)
	big, err := d.Malloc(limit)
	if err != nil {
		t.Fatalf("Malloc(limit): %v", err)
	}
	defer big.Free()

	_, err = d.Malloc(1)
	if !errors.Is(err, ErrOutOfMemory) || !errors.Is(err, ErrLaunchRejected) {
		t.Errorf("Malloc past limit: got %v, want ErrOutOfMemory wrapping ErrLaunchRejected", err)
	}
	if _, err := d.Malloc(0); !errors.Is(err, ErrLaunchRejected) {
		t.Errorf("Malloc(0): got %v, want ErrLaunchRejected", err)
	}
}

func TestBuffer_Copy(t *testing.T) {
	d := newTestDevice(t)
	buf, err := d.Malloc(4)
	if err != nil {
		t.Fatal(err)
	}

	if err := buf.CopyFromHost([]float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("CopyFromHost: %v", err)
	}
	host := make([]float32, 4)
	if err := buf.CopyToHost(host); err != nil {
		t.Fatalf("CopyToHost: %v", err)
	}
	for i, v := range host {
		if v != float32(i+1) {
			t.Errorf("host[%d] = %v, want %v", i, v, float32(i+1))
		}
	}

	if err := buf.CopyFromHost(make([]float32, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short CopyFromHost: got %v, want ErrSizeMismatch", err)
	}
	if err := buf.CopyToHost(make([]float32, 5)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("long CopyToHost: got %v, want ErrSizeMismatch", err)
	}

	buf.Free()
	if err := buf.CopyFromHost(host); !errors.Is(err, ErrFreed) {
		t.Errorf("CopyFromHost after Free: got %v, want ErrFreed", err)
	}
	if err := buf.CopyToHost(host); !errors.Is(err, ErrFreed) {
		t.Errorf("CopyToHost after Free: got %v, want ErrFreed", err)
	}
	if buf.Slice() != nil {
		t.Error("Slice after Free should be nil")
	}
}

func TestFreedBufferFaultsKernel(t *testing.T) {
	d := newTestDevice(t)
	buf, err := d.Malloc(16)
	if err != nil {
		t.Fatal(err)
	}
	buf.Free()

	err = d.Launch(LaunchConfig{Grid: Dim2(1, 1), Block: Dim2(16, 1)}, func(th *Thread) {
		buf.Slice()[th.ThreadIdx.X] = 1
	})
	if !errors.Is(err, ErrExecutionFailed) {
		t.Errorf("write to freed buffer: got %v, want ErrExecutionFailed", err)
	}
}

func TestAllocConstant(t *testing.T) {
	d := newTestDevice(t)
	bank := d.Properties().ConstantMemSize / floatSize // 64 elements

	a, err := d.AllocConstant(16)
	if err != nil {
		t.Fatalf("AllocConstant: %v", err)
	}
	b, err := d.AllocConstant(32)
	if err != nil {
		t.Fatalf("AllocConstant: %v", err)
	}
	if _, n := d.Allocated(); n != 48 {
		t.Errorf("constant elements in use: got %d, want 48", n)
	}

	if _, err := d.AllocConstant(bank - 47); !errors.Is(err, ErrConstantOverflow) {
		t.Errorf("overflow: got %v, want ErrConstantOverflow", err)
	}

	// Freeing the first symbol opens a 16-element gap at the start.
	a.Free()
	c, err := d.AllocConstant(16)
	if err != nil {
		t.Fatalf("AllocConstant into gap: %v", err)
	}
	if c.offset != 0 {
		t.Errorf("first-fit offset: got %d, want 0", c.offset)
	}

	if err := c.CopyFromHost(make([]float32, 16)); err != nil {
		t.Errorf("CopyFromHost: %v", err)
	}
	if err := b.CopyFromHost(make([]float32, 16)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short CopyFromHost: got %v, want ErrSizeMismatch", err)
	}

	// Symbols do not overlap.
	for i := range c.Slice() {
		c.Slice()[i] = 1
	}
	for i, v := range b.Slice() {
		if v != 0 {
			t.Fatalf("b[%d] = %v after writing c, want 0", i, v)
		}
	}

	b.Free()
	c.Free()
	c.Free()
	if _, n := d.Allocated(); n != 0 {
		t.Errorf("constant elements after Free: got %d, want 0", n)
	}
	if c.Slice() != nil {
		t.Error("Slice after Free should be nil")
	}
	if err := c.CopyFromHost(make([]float32, 16)); !errors.Is(err, ErrFreed) {
		t.Errorf("CopyFromHost after Free: got %v, want ErrFreed", err)
	}
}
