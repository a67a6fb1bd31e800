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

	"gonum.org/v1/gonum/mat"
)

// Kernel is a square, odd-sized filter stored row-major.
// It is applied as a correlation: coefficients are not rotated.
type Kernel struct {
	coeffs []float32
	width  int
	height int
}

// NewKernel validates and wraps coeffs as a width x height kernel.
// The slice is copied so later writes by the caller do not affect the kernel.
func NewKernel(coeffs []float32, width, height int) (*Kernel, error) {
	if err := validateKernelShape(len(coeffs), width, height); err != nil {
		return nil, err
	}
	k := &Kernel{coeffs: make([]float32, len(coeffs)), width: width, height: height}
	copy(k.coeffs, coeffs)
	return k, nil
}

// MustKernel is like NewKernel but panics on invalid input.
// Intended for package-level preset tables.
func MustKernel(coeffs []float32, width, height int) *Kernel {
	k, err := NewKernel(coeffs, width, height)
	if err != nil {
		panic(err)
	}
	return k
}

func validateKernelShape(n, width, height int) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: got %dx%d", ErrBadKernel, width, height)
	case width != height:
		return fmt.Errorf("%w: %dx%d is not square", ErrBadKernel, width, height)
	case width%2 == 0:
		return fmt.Errorf("%w: size %d is even", ErrBadKernel, width)
	case n != width*height:
		return fmt.Errorf("%w: %d coefficients for %dx%d", ErrBadKernel, n, width, height)
	}
	return nil
}

// Validate re-checks the kernel invariants. A nil or zero-value Kernel is
// invalid.
func (k *Kernel) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrBadKernel)
	}
	return validateKernelShape(len(k.coeffs), k.width, k.height)
}

// Width returns the kernel width.
func (k *Kernel) Width() int {
	return k.width
}

// Height returns the kernel height.
func (k *Kernel) Height() int {
	return k.height
}

// Radius returns the halo needed on each side: (width/2, height/2).
func (k *Kernel) Radius() (rx, ry int) {
	return k.width / 2, k.height / 2
}

// At returns the coefficient at column x, row y.
func (k *Kernel) At(x, y int) float32 {
	return k.coeffs[y*k.width+x]
}

// Coefficients returns a copy of the row-major coefficients.
func (k *Kernel) Coefficients() []float32 {
	out := make([]float32, len(k.coeffs))
	copy(out, k.coeffs)
	return out
}

// Sum returns the sum of all coefficients.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, c := range k.coeffs {
		sum += float64(c)
	}
	return sum
}

// Dense returns the kernel as a gonum matrix.
func (k *Kernel) Dense() *mat.Dense {
	d := mat.NewDense(k.height, k.width, nil)
	for y := range k.height {
		for x := range k.width {
			d.Set(y, x, float64(k.At(x, y)))
		}
	}
	return d
}

// String renders the coefficients as a bracketed table.
func (k *Kernel) String() string {
	if k.Validate() != nil {
		return "Kernel(unset)"
	}
	return fmt.Sprintf("%.4g", mat.Formatted(k.Dense(), mat.Squeeze()))
}
