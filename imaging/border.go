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

import (
	"fmt"
	"strings"
)

// Border selects how Pad fills cells outside the source footprint.
type Border int

const (
	// BorderReplicate copies the nearest edge or corner pixel.
	BorderReplicate Border = iota

	// BorderZero fills the halo with 0.
	BorderZero

	// BorderMirror reflects coordinates at the edges (abc|cba).
	BorderMirror

	// BorderWrap tiles the source periodically.
	BorderWrap
)

// String returns the policy name accepted by ParseBorder.
func (b Border) String() string {
	switch b {
	case BorderReplicate:
		return "replicate"
	case BorderZero:
		return "zero"
	case BorderMirror:
		return "mirror"
	case BorderWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// ParseBorder returns the Border with the given name.
func ParseBorder(name string) (Border, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "replicate", "clamp", "":
		return BorderReplicate, nil
	case "zero":
		return BorderZero, nil
	case "mirror", "reflect":
		return BorderMirror, nil
	case "wrap":
		return BorderWrap, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBorder, name)
}

func (b Border) valid() bool {
	return b >= BorderReplicate && b <= BorderWrap
}

// remap returns the source coordinate for index under the policy, or -1 when
// the cell must be zero.
func (b Border) remap(index, size int) int {
	switch b {
	case BorderReplicate:
		return Clamp(index, size)
	case BorderMirror:
		return Mirror(index, size)
	case BorderWrap:
		return Wrap(index, size)
	default: // BorderZero
		if index < 0 || index >= size {
			return -1
		}
		return index
	}
}

// Mirror returns the mirrored index for out-of-bounds coordinates.
// Given bounds [0, size), mirrors index to stay within bounds.
func Mirror(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index < 0 {
		index = -index - 1
	}
	if index >= size {
		period := 2 * size
		index = index % period
		if index >= size {
			index = period - index - 1
		}
	}
	return index
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

// Wrap returns index wrapped to [0, size) using modulo.
func Wrap(index, size int) int {
	if size <= 0 {
		return 0
	}
	index = index % size
	if index < 0 {
		index += size
	}
	return index
}
