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

// Package accel simulates a SIMT compute accelerator on the host CPU.
//
// Work is organized as on a GPU: a launch covers a grid of blocks, each block
// holds up to MaxThreadsPerBlock lanes, and every lane runs the same
// KernelFunc. Blocks run concurrently on a fixed set of multiprocessors with
// no ordering between them; lanes of one block run concurrently and can
// synchronize with Thread.SyncThreads and share a per-block scratch array.
//
// Memory follows the usual three tiers:
//
//	dev, _ := accel.NewDevice(accel.DetectProperties())
//	defer dev.Close()
//
//	in, _ := dev.Malloc(n)           // global memory
//	defer in.Free()
//	coeffs, _ := dev.AllocConstant(9) // constant bank
//	defer coeffs.Free()
//
//	err := dev.Launch(accel.LaunchConfig{
//	    Grid:      accel.Dim2(gx, gy),
//	    Block:     accel.Dim2(16, 16),
//	    SharedMem: 18 * 18,           // shared memory, per block
//	}, func(t *accel.Thread) { ... })
//
// Invalid launch shapes and exhausted memory fail with ErrLaunchRejected; a
// lane that panics fails the launch with ErrExecutionFailed.
//
// The warp width and shared memory budget follow the host: the vector level
// is detected with golang.org/x/sys/cpu and the L1 data cache size with
// github.com/klauspost/cpuid/v2. Set CONVOLVE_NO_SIMD=1 to force scalar.
package accel
