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
	"github.com/ajroetker/go-convolve/accel"
	"github.com/ajroetker/go-convolve/imaging"
)

// launchArgs are the device pointers and geometry shared by every lane.
type launchArgs struct {
	image  []float32 // padded image, global memory
	filter []float32 // global memory or constant bank
	out    []float32 // width x height, global memory

	width, height int
	padded        imaging.Rect
	kw, kh        int
}

func (a *launchArgs) kernelFor(s Strategy) accel.KernelFunc {
	switch s {
	case Global:
		return a.global
	case Constant:
		return a.constant
	default:
		return a.sharedTile
	}
}

// global reads every tap of image and filter from global memory.
func (a *launchArgs) global(t *accel.Thread) {
	x, y := t.GlobalX(), t.GlobalY()
	if x >= a.width || y >= a.height {
		return
	}
	pw := a.padded.Width()
	var sum float32
	for dy := 0; dy < a.kh; dy++ {
		for dx := 0; dx < a.kw; dx++ {
			sum += a.filter[dy*a.kw+dx] * a.image[(y+dy)*pw+x+dx]
		}
	}
	a.out[y*a.width+x] = saturate32(sum)
}

// constant reads the filter from the constant bank. Every lane of a warp
// reads the same coefficient at the same step, so each filter row is
// taken once as a broadcast slice.
func (a *launchArgs) constant(t *accel.Thread) {
	x, y := t.GlobalX(), t.GlobalY()
	if x >= a.width || y >= a.height {
		return
	}
	pw := a.padded.Width()
	var sum float32
	for dy := range a.kh {
		krow := a.filter[dy*a.kw : (dy+1)*a.kw]
		window := a.image[(y+dy)*pw+x : (y+dy)*pw+x+a.kw]
		for dx, c := range krow {
			sum += c * window[dx]
		}
	}
	a.out[y*a.width+x] = saturate32(sum)
}

// sharedTile stages the block's tile plus halo in shared memory, waits for
// the whole block, then computes from shared memory and the constant bank.
//
// The staged region starts at the block's output origin in padded
// coordinates (the halo offset cancels the padding) and spans
// (BlockDim.X+kw-1) x (BlockDim.Y+kh-1). Blocks on the right and bottom
// edges stage only the part inside the padded image; the rest of the
// scratch is stale and only read by lanes outside the image, which exit
// before computing.
func (a *launchArgs) sharedTile(t *accel.Thread) {
	sw := t.BlockDim.X + a.kw - 1
	sh := t.BlockDim.Y + a.kh - 1
	ox := t.BlockIdx.X * t.BlockDim.X
	oy := t.BlockIdx.Y * t.BlockDim.Y
	region := imaging.Rect{X0: ox, Y0: oy, X1: ox + sw, Y1: oy + sh}.Intersect(a.padded)

	tile := t.Shared()[:sw*sh]
	pw := a.padded.Width()
	lanes := t.BlockDim.X * t.BlockDim.Y
	for i := t.LinearThread(); i < len(tile); i += lanes {
		px, py := ox+i%sw, oy+i/sw
		if px < region.X1 && py < region.Y1 {
			tile[i] = a.image[py*pw+px]
		}
	}
	t.SyncThreads()

	x, y := t.GlobalX(), t.GlobalY()
	if x >= a.width || y >= a.height {
		return
	}
	tx, ty := t.ThreadIdx.X, t.ThreadIdx.Y
	var sum float32
	for dy := range a.kh {
		krow := a.filter[dy*a.kw : (dy+1)*a.kw]
		window := tile[(ty+dy)*sw+tx : (ty+dy)*sw+tx+a.kw]
		for dx, c := range krow {
			sum += c * window[dx]
		}
	}
	a.out[y*a.width+x] = saturate32(sum)
}
