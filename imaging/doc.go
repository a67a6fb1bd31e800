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

// Package imaging provides the matrix types used by single-channel filtering.
//
// The core types are Matrix, a dense row-major plane of float32 samples, and
// Kernel, a square odd-sized coefficient matrix. Both are plain values: every
// filtering operation produces a new Matrix rather than mutating its input.
//
// # Padding
//
// Pad builds a halo-expanded copy of a matrix so that every output pixel of a
// filter has a complete neighborhood:
//
//	padded, err := imaging.Pad(img, 1, 1, imaging.BorderReplicate)
//
// # Edge Handling
//
// Coordinate helper functions map out-of-bounds indices back into range:
//
//	Clamp(index, size)  - repeat edge pixels (replicate border)
//	Mirror(index, size) - reflect at boundaries
//	Wrap(index, size)   - tile/wrap around
package imaging
