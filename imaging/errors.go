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

package imaging

import "errors"

var (
	// ErrBadShape is returned when dimensions are non-positive or do not
	// match the length of the backing slice.
	ErrBadShape = errors.New("imaging: invalid shape")

	// ErrBadKernel is returned for kernels that are empty, non-square,
	// even-sized or whose coefficient count does not match width*height.
	ErrBadKernel = errors.New("imaging: kernel must be square with odd, non-zero size")

	// ErrBadPadding is returned for negative halo sizes.
	ErrBadPadding = errors.New("imaging: padding must be non-negative")

	// ErrUnknownBorder is returned by ParseBorder for unrecognized names.
	ErrUnknownBorder = errors.New("imaging: unknown border policy")
)
