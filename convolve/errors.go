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

package convolve

import (
	"errors"

	"github.com/ajroetker/go-convolve/accel"
)

var (
	// ErrInvalidChannels is returned for images with more than one channel.
	ErrInvalidChannels = errors.New("convolve: only single-channel images are supported")

	// ErrInvalidKernel is returned for nil, empty, non-square or even kernels.
	ErrInvalidKernel = errors.New("convolve: invalid kernel")

	// ErrUnknownStrategy is returned for a Strategy outside the defined set.
	ErrUnknownStrategy = errors.New("convolve: unknown strategy")

	// ErrLaunchRejected is returned when the launch shape or the buffers do
	// not fit the device: zero-sized grid, tile over the thread or shared
	// memory limit, filter over the constant bank, global memory exhausted.
	ErrLaunchRejected = accel.ErrLaunchRejected

	// ErrExecutionFailed is returned when the device faults during a launch
	// or a transfer.
	ErrExecutionFailed = accel.ErrExecutionFailed
)
