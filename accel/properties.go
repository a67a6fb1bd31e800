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
	"os"
	"runtime"
	"strconv"

	"github.com/klauspost/cpuid/v2"
)

// Properties describes the limits of a simulated device.
//
// The memory tiers mirror a discrete accelerator:
//   - Global memory: large, every access is a plain load from a Buffer.
//   - Constant memory: a small bank shared by all blocks, read-only during a
//     launch and served to all lanes of a block at broadcast cost.
//   - Shared memory: per-block scratch, sized per launch, visible only to the
//     lanes of one block. Sized after the host L1 data cache so a block's
//     tile stays cache resident.
type Properties struct {
	Name               string
	Level              Level
	WarpSize           int   // float32 lanes per vector instruction
	MultiProcessors    int   // blocks executing concurrently
	MaxThreadsPerBlock int   // lanes per block
	MaxBlockDim        Dim3  // per-dimension block limit
	MaxGridDim         Dim3  // per-dimension grid limit
	SharedMemPerBlock  int   // bytes of scratch per block
	ConstantMemSize    int   // bytes in the constant bank
	GlobalMemSize      int64 // bytes of global memory
}

// Default limits, modeled on a common discrete GPU.
const (
	DefaultMaxThreadsPerBlock = 1024
	DefaultSharedMemPerBlock  = 48 * 1024
	DefaultConstantMemSize    = 64 * 1024
	DefaultGlobalMemSize      = 1 << 30
)

// DetectProperties returns properties for the current host.
//
// Environment overrides (integers; invalid values are ignored):
//
//	CONVOLVE_SHARED_MEM  bytes of shared memory per block
//	CONVOLVE_GLOBAL_MEM  bytes of global memory
//	CONVOLVE_SMS         number of multiprocessors
func DetectProperties() Properties {
	level := CurrentLevel()
	p := Properties{
		Name:               "sim-" + level.String(),
		Level:              level,
		WarpSize:           level.Width() / 4,
		MultiProcessors:    runtime.GOMAXPROCS(0),
		MaxThreadsPerBlock: DefaultMaxThreadsPerBlock,
		MaxBlockDim:        Dim3{X: 1024, Y: 1024, Z: 64},
		MaxGridDim:         Dim3{X: 1<<31 - 1, Y: 65535, Z: 65535},
		SharedMemPerBlock:  DefaultSharedMemPerBlock,
		ConstantMemSize:    DefaultConstantMemSize,
		GlobalMemSize:      DefaultGlobalMemSize,
	}
	if brand := cpuid.CPU.BrandName; brand != "" {
		p.Name = fmt.Sprintf("sim-%s (%s)", level, brand)
	}
	if l1d := cpuid.CPU.Cache.L1D; l1d > 0 {
		p.SharedMemPerBlock = l1d
	}

	if v, ok := envInt("CONVOLVE_SHARED_MEM"); ok {
		p.SharedMemPerBlock = v
	}
	if v, ok := envInt("CONVOLVE_GLOBAL_MEM"); ok {
		p.GlobalMemSize = int64(v)
	}
	if v, ok := envInt("CONVOLVE_SMS"); ok {
		p.MultiProcessors = v
	}
	return p
}

// Validate checks that every limit is positive.
func (p Properties) Validate() error {
	switch {
	case p.WarpSize <= 0:
		return fmt.Errorf("%w: warp size %d", ErrBadProperties, p.WarpSize)
	case p.MultiProcessors <= 0:
		return fmt.Errorf("%w: %d multiprocessors", ErrBadProperties, p.MultiProcessors)
	case p.MaxThreadsPerBlock <= 0:
		return fmt.Errorf("%w: max threads per block %d", ErrBadProperties, p.MaxThreadsPerBlock)
	case !p.MaxBlockDim.positive() || !p.MaxGridDim.positive():
		return fmt.Errorf("%w: block limit %v, grid limit %v", ErrBadProperties, p.MaxBlockDim, p.MaxGridDim)
	case p.SharedMemPerBlock < 0 || p.ConstantMemSize < 0:
		return fmt.Errorf("%w: shared %d, constant %d", ErrBadProperties, p.SharedMemPerBlock, p.ConstantMemSize)
	case p.GlobalMemSize <= 0:
		return fmt.Errorf("%w: global memory %d", ErrBadProperties, p.GlobalMemSize)
	}
	return nil
}

func envInt(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	v, err := strconv.Atoi(val)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
