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

// Package presets builds commonly used filter kernels.
//
// Every constructor returns an *imaging.Kernel that satisfies the kernel
// invariants (square, odd, non-zero size). Only Gaussian and Box are
// normalized; the derivative filters keep their integer coefficients and
// rely on output clamping.
package presets

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-convolve/imaging"
)

var (
	// ErrUnknownPreset is returned by Build for an unrecognized kind.
	ErrUnknownPreset = errors.New("presets: unknown preset")

	// ErrBadParams is returned for invalid sizes or standard deviations.
	ErrBadParams = errors.New("presets: invalid parameters")
)

// Kind names a preset.
type Kind string

const (
	KindGaussian            Kind = "gaussian"
	KindSharpen             Kind = "sharpen"
	KindEdge                Kind = "edge"
	KindLaplacian           Kind = "laplacian"
	KindLaplacianOfGaussian Kind = "log"
	KindBox                 Kind = "box"
	KindIdentity            Kind = "identity"
)

// Params carries the arguments of the parameterized presets.
// Size applies to Gaussian and Box, Sigma to Gaussian.
type Params struct {
	Size  int
	Sigma float64
}

// DefaultParams returns a 5x5 Gaussian with sigma 1.
func DefaultParams() Params {
	return Params{Size: 5, Sigma: 1}
}

var builders = map[Kind]func(Params) (*imaging.Kernel, error){
	KindGaussian:            func(p Params) (*imaging.Kernel, error) { return Gaussian(p.Size, p.Sigma) },
	KindSharpen:             func(Params) (*imaging.Kernel, error) { return Sharpen(), nil },
	KindEdge:                func(Params) (*imaging.Kernel, error) { return EdgeDetect(), nil },
	KindLaplacian:           func(Params) (*imaging.Kernel, error) { return Laplacian(), nil },
	KindLaplacianOfGaussian: func(Params) (*imaging.Kernel, error) { return LaplacianOfGaussian(), nil },
	KindBox:                 func(p Params) (*imaging.Kernel, error) { return Box(p.Size) },
	KindIdentity:            func(Params) (*imaging.Kernel, error) { return Identity(), nil },
}

// Kinds returns every preset name in sorted order.
func Kinds() []Kind {
	kinds := lo.Keys(builders)
	slices.Sort(kinds)
	return kinds
}

// Build returns the named preset.
func Build(kind Kind, p Params) (*imaging.Kernel, error) {
	build, ok := builders[Kind(strings.ToLower(string(kind)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPreset, kind,
			strings.Join(lo.Map(Kinds(), func(k Kind, _ int) string { return string(k) }), ", "))
	}
	return build(p)
}

// Gaussian returns a normalized size x size Gaussian kernel with standard
// deviation sigma.
func Gaussian(size int, sigma float64) (*imaging.Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: gaussian size %d must be odd and positive", ErrBadParams, size)
	}
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: gaussian sigma %v must be positive", ErrBadParams, sigma)
	}

	half := size / 2
	twoSigma2 := 2 * sigma * sigma
	weights := lo.Times(size*size, func(i int) float64 {
		dy, dx := i/size-half, i%size-half
		return math.Exp(-float64(dx*dx+dy*dy)/twoSigma2) / (math.Pi * twoSigma2)
	})
	sum := lo.Sum(weights)
	coeffs := lo.Map(weights, func(w float64, _ int) float32 {
		return float32(w / sum)
	})
	return imaging.NewKernel(coeffs, size, size)
}

// Box returns a size x size mean filter.
func Box(size int) (*imaging.Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: box size %d must be odd and positive", ErrBadParams, size)
	}
	w := float32(1) / float32(size*size)
	return imaging.NewKernel(lo.Times(size*size, func(int) float32 { return w }), size, size)
}

// centerKernel returns a 3x3 kernel with center value at the middle and
// other everywhere else.
func centerKernel(center, other float32) []float32 {
	coeffs := lo.Times(9, func(int) float32 { return other })
	coeffs[4] = center
	return coeffs
}

// crossKernel is centerKernel with the four corners zeroed.
func crossKernel(center, other float32) []float32 {
	coeffs := centerKernel(center, other)
	for _, i := range []int{0, 2, 6, 8} {
		coeffs[i] = 0
	}
	return coeffs
}

// Sharpen returns the 3x3 sharpening filter (5 center, -1 cross).
func Sharpen() *imaging.Kernel {
	return imaging.MustKernel(crossKernel(5, -1), 3, 3)
}

// EdgeDetect returns the 3x3 omnidirectional edge detector (8 center, -1
// elsewhere).
func EdgeDetect() *imaging.Kernel {
	return imaging.MustKernel(centerKernel(8, -1), 3, 3)
}

// Laplacian returns the 3x3 four-neighbor Laplacian (4 center, -1 cross).
func Laplacian() *imaging.Kernel {
	return imaging.MustKernel(crossKernel(4, -1), 3, 3)
}

// LaplacianOfGaussian returns the 5x5 integer Laplacian-of-Gaussian
// approximation.
func LaplacianOfGaussian() *imaging.Kernel {
	return imaging.MustKernel([]float32{
		0, 0, -1, 0, 0,
		0, -1, -2, -1, 0,
		-1, -2, 16, -2, -1,
		0, -1, -2, -1, 0,
		0, 0, -1, 0, 0,
	}, 5, 5)
}

// Identity returns the 1x1 kernel [1].
func Identity() *imaging.Kernel {
	return imaging.MustKernel([]float32{1}, 1, 1)
}
