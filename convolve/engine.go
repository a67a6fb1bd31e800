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

	"github.com/ajroetker/go-convolve/accel"
	"github.com/ajroetker/go-convolve/imaging"
)

// Engine applies filters with a fixed set of options. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	cfg config
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	return &Engine{cfg: newConfig(opts)}
}

// Apply filters src with k using strategy and the default device.
func Apply(src *imaging.Matrix, k *imaging.Kernel, strategy Strategy, opts ...Option) (*imaging.Matrix, error) {
	return NewEngine(opts...).Apply(src, k, strategy)
}

// Device returns the device used by the parallel strategies.
func (e *Engine) Device() *accel.Device {
	if e.cfg.device != nil {
		return e.cfg.device
	}
	return accel.Default()
}

// Tile returns the block shape the parallel strategies launch with.
func (e *Engine) Tile() TileParams {
	if !e.cfg.tile.IsZero() {
		return e.cfg.tile
	}
	return defaultTile(e.Device().Properties())
}

// Apply filters src with k. The result has the dimensions of src, holds
// values in [0, 255] and never shares storage with src. Device buffers are
// released before Apply returns, whether it succeeds or not.
func (e *Engine) Apply(src *imaging.Matrix, k *imaging.Kernel, strategy Strategy) (*imaging.Matrix, error) {
	switch {
	case strategy == Sequential:
		return e.cfg.sequential(src, k)
	case strategy.OnDevice():
		return e.parallel(src, k, strategy, (*launchArgs).kernelFor)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
}

// deviceArray is the part of accel.Buffer and accel.ConstBuffer used to
// stage the filter.
type deviceArray interface {
	CopyFromHost(src []float32) error
	Slice() []float32
	Free()
}

// kernelSelector picks the lane body for a strategy once the buffers are in
// place.
type kernelSelector func(args *launchArgs, s Strategy) accel.KernelFunc

func (e *Engine) parallel(src *imaging.Matrix, k *imaging.Kernel, strategy Strategy, selectKernel kernelSelector) (*imaging.Matrix, error) {
	if err := validate(src, k); err != nil {
		return nil, err
	}
	dev := e.Device()
	tile := e.Tile()
	if tile.Width <= 0 || tile.Height <= 0 {
		return nil, fmt.Errorf("%w: tile %v", ErrLaunchRejected, tile)
	}
	width, height := src.Width(), src.Height()

	launch := accel.LaunchConfig{
		Grid:  accel.Dim2(ceilDiv(width, tile.Width), ceilDiv(height, tile.Height)),
		Block: accel.Dim2(tile.Width, tile.Height),
	}
	if strategy == SharedTile {
		rx, ry := k.Radius()
		launch.SharedMem = tile.SharedElems(rx, ry)
	}
	if err := dev.Validate(launch); err != nil {
		return nil, err
	}

	padded, err := e.cfg.pad(src, k, strategy)
	if err != nil {
		return nil, err
	}

	var image, out *accel.Buffer
	var filter deviceArray
	err = e.cfg.observe(PhaseUpload, strategy, func() error {
		var err error
		if image, err = dev.Malloc(padded.Len()); err != nil {
			return err
		}
		if err := image.CopyFromHost(padded.Data()); err != nil {
			return fmt.Errorf("%w: upload image: %w", ErrExecutionFailed, err)
		}
		if filter, err = stageFilter(dev, k, strategy); err != nil {
			return err
		}
		out, err = dev.Malloc(width * height)
		return err
	})
	// Free whatever was allocated, on every path.
	defer func() {
		for _, b := range []*accel.Buffer{image, out} {
			if b != nil {
				b.Free()
			}
		}
		if filter != nil {
			filter.Free()
		}
	}()
	if err != nil {
		return nil, err
	}

	args := &launchArgs{
		image:  image.Slice(),
		filter: filter.Slice(),
		out:    out.Slice(),
		width:  width,
		height: height,
		padded: padded.Bounds(),
		kw:     k.Width(),
		kh:     k.Height(),
	}
	err = e.cfg.observe(PhaseCompute, strategy, func() error {
		return dev.Launch(launch, selectKernel(args, strategy))
	})
	if err != nil {
		return nil, err
	}

	result := imaging.NewMatrix(width, height)
	err = e.cfg.observe(PhaseDownload, strategy, func() error {
		if err := out.CopyToHost(result.Data()); err != nil {
			return fmt.Errorf("%w: download result: %w", ErrExecutionFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// stageFilter copies the kernel to global memory for the global strategy
// and to the constant bank otherwise.
func stageFilter(dev *accel.Device, k *imaging.Kernel, strategy Strategy) (deviceArray, error) {
	coeffs := k.Coefficients()
	var arr deviceArray
	if strategy == Global {
		b, err := dev.Malloc(len(coeffs))
		if err != nil {
			return nil, err
		}
		arr = b
	} else {
		c, err := dev.AllocConstant(len(coeffs))
		if err != nil {
			return nil, err
		}
		arr = c
	}
	if err := arr.CopyFromHost(coeffs); err != nil {
		arr.Free()
		return nil, fmt.Errorf("%w: upload filter: %w", ErrExecutionFailed, err)
	}
	return arr, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
