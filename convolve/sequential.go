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
	"fmt"
	"math"

	"github.com/ajroetker/go-convolve/imaging"
)

// Output range of every strategy.
const (
	minIntensity = 0
	maxIntensity = 255
)

// ApplySequential filters src with k on the calling goroutine.
//
// It is the reference the device strategies are checked against: taps are
// accumulated in float64 and each output is clamped to [0, 255] once.
func ApplySequential(src *imaging.Matrix, k *imaging.Kernel, opts ...Option) (*imaging.Matrix, error) {
	cfg := newConfig(opts)
	return cfg.sequential(src, k)
}

func (c *config) sequential(src *imaging.Matrix, k *imaging.Kernel) (*imaging.Matrix, error) {
	if err := validate(src, k); err != nil {
		return nil, err
	}
	padded, err := c.pad(src, k, Sequential)
	if err != nil {
		return nil, err
	}

	out := imaging.NewMatrix(src.Width(), src.Height())
	err = c.observe(PhaseCompute, Sequential, func() error {
		correlate(out, padded, k.Coefficients(), k.Width(), k.Height())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// correlate writes into out the correlation of padded with the kernel.
// padded must extend out by the kernel radius on every side.
func correlate(out, padded *imaging.Matrix, coeffs []float32, kw, kh int) {
	pw := padded.Width()
	pd := padded.Data()
	for y := range out.Height() {
		row := out.Row(y)
		for x := range row {
			var sum float64
			for dy := range kh {
				window := pd[(y+dy)*pw+x : (y+dy)*pw+x+kw]
				for dx, c := range coeffs[dy*kw : (dy+1)*kw] {
					sum += float64(c) * float64(window[dx])
				}
			}
			row[x] = saturate(sum)
		}
	}
}

// pad expands src by the kernel radius using the configured border.
func (c *config) pad(src *imaging.Matrix, k *imaging.Kernel, strategy Strategy) (*imaging.Matrix, error) {
	rx, ry := k.Radius()
	var padded *imaging.Matrix
	err := c.observe(PhasePad, strategy, func() error {
		var err error
		padded, err = imaging.Pad(src, ry, rx, c.border)
		return err
	})
	return padded, err
}

// validate checks the inputs shared by every strategy.
func validate(src *imaging.Matrix, k *imaging.Kernel) error {
	if src.Empty() {
		return fmt.Errorf("%w: empty image", imaging.ErrBadShape)
	}
	if src.Channels() != 1 {
		return fmt.Errorf("%w: got %d channels", ErrInvalidChannels, src.Channels())
	}
	if err := k.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKernel, err)
	}
	return nil
}

// saturate clamps v into the output range. NaN maps to zero.
func saturate(v float64) float32 {
	switch {
	case math.IsNaN(v) || v < minIntensity:
		return minIntensity
	case v > maxIntensity:
		return maxIntensity
	}
	return float32(v)
}

func saturate32(v float32) float32 {
	switch {
	case v != v || v < minIntensity: // NaN
		return minIntensity
	case v > maxIntensity:
		return maxIntensity
	}
	return v
}
