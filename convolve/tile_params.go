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
)

// TileParams is the output tile computed by one block, one lane per pixel.
//
// Width is kept a multiple of the level's warp size so a row of lanes maps
// onto whole warps. The shared-tile strategy additionally stages a halo of
// one kernel radius on every side, so its shared memory need is
// (Width+2r) x (Height+2r) float32 values.
type TileParams struct {
	Width  int
	Height int
}

// IsZero reports whether no tile was configured.
func (p TileParams) IsZero() bool {
	return p.Width == 0 && p.Height == 0
}

// Lanes returns the lanes per block.
func (p TileParams) Lanes() int {
	return p.Width * p.Height
}

// String formats the tile as WxH.
func (p TileParams) String() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// SharedElems returns the shared memory a tile needs for a kernel radius.
func (p TileParams) SharedElems(rx, ry int) int {
	return (p.Width + 2*rx) * (p.Height + 2*ry)
}

// TileParamsAVX512 returns the tile for 512-bit levels (warp of 16 lanes).
func TileParamsAVX512() TileParams {
	return TileParams{Width: 32, Height: 16}
}

// TileParamsAVX2 returns the tile for 256-bit levels (warp of 8 lanes).
func TileParamsAVX2() TileParams {
	return TileParams{Width: 16, Height: 16}
}

// TileParamsNEON returns the tile for 128-bit levels (warp of 4 lanes).
// SSE2 and SVE use it as well.
func TileParamsNEON() TileParams {
	return TileParams{Width: 16, Height: 8}
}

// TileParamsFallback returns a conservative tile for the scalar level.
func TileParamsFallback() TileParams {
	return TileParams{Width: 8, Height: 8}
}

// TileParamsFor returns the default tile for a dispatch level.
func TileParamsFor(level accel.Level) TileParams {
	switch level {
	case accel.LevelAVX512:
		return TileParamsAVX512()
	case accel.LevelAVX2:
		return TileParamsAVX2()
	case accel.LevelNEON, accel.LevelSVE, accel.LevelSSE2:
		return TileParamsNEON()
	default:
		return TileParamsFallback()
	}
}

// defaultTile returns the level tile halved until it fits the device's
// per-block thread limit.
func defaultTile(props accel.Properties) TileParams {
	p := TileParamsFor(props.Level)
	for p.Lanes() > props.MaxThreadsPerBlock && p.Lanes() > 1 {
		if p.Height >= p.Width {
			p.Height = max(1, p.Height/2)
		} else {
			p.Width = max(1, p.Width/2)
		}
	}
	return p
}
