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
)

var (
	// ErrLaunchRejected is returned when a launch or allocation request does
	// not fit the device: zero-sized grids, oversized blocks, scratch or
	// constant memory beyond budget. These are configuration bugs and are
	// never retried.
	ErrLaunchRejected = errors.New("accel: launch rejected")

	// ErrExecutionFailed is returned when a lane faults while a kernel runs.
	ErrExecutionFailed = errors.New("accel: execution failed")

	// ErrOutOfMemory is returned when global memory is exhausted.
	ErrOutOfMemory = fmt.Errorf("accel: out of global memory: %w", ErrLaunchRejected)

	// ErrConstantOverflow is returned when the constant bank cannot hold a
	// requested symbol.
	ErrConstantOverflow = fmt.Errorf("accel: constant bank exhausted: %w", ErrLaunchRejected)

	// ErrDeviceClosed is returned for any request on a closed Device.
	ErrDeviceClosed = fmt.Errorf("accel: device closed: %w", ErrLaunchRejected)

	// ErrFreed is returned when a released buffer is used again.
	ErrFreed = errors.New("accel: buffer already freed")

	// ErrSizeMismatch is returned when host and device lengths differ.
	ErrSizeMismatch = errors.New("accel: host/device size mismatch")

	// ErrBarrierBroken is returned by Barrier.Wait after a participant faulted.
	ErrBarrierBroken = errors.New("accel: barrier broken")

	// ErrBadProperties is returned by NewDevice for non-positive limits.
	ErrBadProperties = errors.New("accel: invalid device properties")
)
