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
	"math"
)

// Matrix is a dense row-major plane of samples.
//
// Samples are stored without row padding so the backing slice can be handed
// to a device buffer as-is. Freshly decoded matrices may hold values outside
// [0, 255]; filter outputs are always clamped into that range.
type Matrix struct {
	data     []float32
	width    int
	height   int
	channels int
}

// NewMatrix creates a zeroed single-channel matrix with the given dimensions.
// Non-positive dimensions yield an empty 0x0 matrix.
func NewMatrix(width, height int) *Matrix {
	if width <= 0 || height <= 0 {
		return &Matrix{channels: 1}
	}
	return &Matrix{
		data:     make([]float32, width*height),
		width:    width,
		height:   height,
		channels: 1,
	}
}

// FromSlice wraps data as a single-channel width x height matrix.
// The slice is used directly, not copied.
func FromSlice(data []float32, width, height int) (*Matrix, error) {
	return FromChannels(data, width, height, 1)
}

// FromChannels wraps interleaved data with the given channel count.
// Filters in this module only accept single-channel matrices; the channel
// count exists so foreign buffers can be rejected instead of misread.
func FromChannels(data []float32, width, height, channels int) (*Matrix, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBadShape, width, height, channels)
	}
	if len(data) != width*height*channels {
		return nil, fmt.Errorf("%w: %d samples for %dx%dx%d", ErrBadShape, len(data), width, height, channels)
	}
	return &Matrix{data: data, width: width, height: height, channels: channels}, nil
}

// Width returns the matrix width in pixels.
func (m *Matrix) Width() int {
	return m.width
}

// Height returns the matrix height in pixels.
func (m *Matrix) Height() int {
	return m.height
}

// Channels returns the number of interleaved channels.
func (m *Matrix) Channels() int {
	return m.channels
}

// Len returns the number of samples.
func (m *Matrix) Len() int {
	return len(m.data)
}

// Empty reports whether the matrix holds no samples.
func (m *Matrix) Empty() bool {
	return m == nil || len(m.data) == 0
}

// Data returns the backing slice. Writes through it are visible in m.
func (m *Matrix) Data() []float32 {
	return m.data
}

// Row returns a mutable slice for row y, or nil when y is out of range.
func (m *Matrix) Row(y int) []float32 {
	if y < 0 || y >= m.height || m.data == nil {
		return nil
	}
	stride := m.width * m.channels
	start := y * stride
	return m.data[start : start+stride]
}

// At returns the value at position (x, y) of the first channel.
// Out-of-range coordinates read as zero.
func (m *Matrix) At(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || m.data == nil {
		return 0
	}
	return m.data[(y*m.width+x)*m.channels]
}

// Set sets the value at position (x, y) of the first channel.
// Out-of-range coordinates are ignored.
func (m *Matrix) Set(x, y int, value float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || m.data == nil {
		return
	}
	m.data[(y*m.width+x)*m.channels] = value
}

// SameSize returns true if both matrices have the same dimensions.
func SameSize(a, b *Matrix) bool {
	return a.width == b.width && a.height == b.height
}

// Equal reports whether a and b have identical shape and samples.
func Equal(a, b *Matrix) bool {
	if !SameSize(a, b) || a.channels != b.channels || len(a.data) != len(b.data) {
		return false
	}
	for i, v := range a.data {
		if b.data[i] != v {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest absolute sample difference between a and b.
func MaxAbsDiff(a, b *Matrix) (float64, error) {
	if !SameSize(a, b) || a.channels != b.channels {
		return 0, fmt.Errorf("%w: %v vs %v", ErrBadShape, a, b)
	}
	var worst float64
	for i, v := range a.data {
		worst = max(worst, math.Abs(float64(v)-float64(b.data[i])))
	}
	return worst, nil
}

// Clone creates a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	clone := &Matrix{
		width:    m.width,
		height:   m.height,
		channels: m.channels,
	}
	if m.data != nil {
		clone.data = make([]float32, len(m.data))
		copy(clone.data, m.data)
	}
	return clone
}

// Fill sets all samples to the specified value.
func (m *Matrix) Fill(value float32) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Bounds returns the bounding rectangle of the matrix.
func (m *Matrix) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: m.width, Y1: m.height}
}

// String implements fmt.Stringer with the shape only.
func (m *Matrix) String() string {
	if m.channels > 1 {
		return fmt.Sprintf("Matrix(%dx%dx%d)", m.width, m.height, m.channels)
	}
	return fmt.Sprintf("Matrix(%dx%d)", m.width, m.height)
}

// Rect defines a rectangular region within a matrix.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X0, other.X0)
	y0 := max(r.Y0, other.Y0)
	x1 := min(r.X1, other.X1)
	y1 := min(r.Y1, other.Y1)
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}
