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

// Package convolve applies a square FIR filter to a single-channel image.
//
// Four execution strategies produce the same result up to float rounding:
//
//	Sequential  host reference, float64 accumulation, one goroutine
//	Global      one lane per pixel; image and filter read from global memory
//	Constant    filter staged in the constant bank, image from global memory
//	SharedTile  each block stages its tile plus halo in shared memory, then
//	            computes from shared memory and the constant bank only
//
// All strategies pad the image on the host (replicate border by default)
// with a halo equal to the kernel radius, apply the kernel as a correlation
// and clamp every output to [0, 255]. The result always has the source
// dimensions and never aliases the source.
//
// Usage:
//
//	k, _ := presets.Gaussian(5, 1.4)
//	out, err := convolve.Apply(img, k, convolve.SharedTile)
//
// An Engine carries options across calls:
//
//	eng := convolve.NewEngine(
//	    convolve.WithDevice(dev),
//	    convolve.WithTile(32, 8),
//	    convolve.WithObserver(func(ev convolve.Event) { ... }),
//	)
//	out, err := eng.Apply(img, k, convolve.Constant)
package convolve
