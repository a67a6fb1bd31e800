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

import "fmt"

// Pad returns a new (w+2*padW) x (h+2*padH) matrix holding src at offset
// (padW, padH) and a halo filled according to policy. src is not modified.
// A policy outside the defined Border values is rejected with
// ErrUnknownBorder.
func Pad(src *Matrix, padH, padW int, policy Border) (*Matrix, error) {
	if padH < 0 || padW < 0 {
		return nil, fmt.Errorf("%w: padH=%d padW=%d", ErrBadPadding, padH, padW)
	}
	if !policy.valid() {
		return nil, fmt.Errorf("%w: Border(%d)", ErrUnknownBorder, int(policy))
	}
	if src.Empty() || src.channels != 1 {
		return nil, fmt.Errorf("%w: cannot pad %s", ErrBadShape, src)
	}

	width, height := src.width, src.height
	paddedW := width + 2*padW
	paddedH := height + 2*padH
	out := NewMatrix(paddedW, paddedH)

	// Column lookup is shared by every row, so resolve it once.
	cols := make([]int, paddedW)
	for x := range paddedW {
		cols[x] = policy.remap(x-padW, width)
	}

	for y := range paddedH {
		dst := out.data[y*paddedW : (y+1)*paddedW]
		sy := policy.remap(y-padH, height)
		if sy < 0 {
			// Zero policy: whole halo row stays zero.
			continue
		}
		srcRow := src.data[sy*width : (sy+1)*width]
		copy(dst[padW:padW+width], srcRow)
		for x := 0; x < padW; x++ {
			if sx := cols[x]; sx >= 0 {
				dst[x] = srcRow[sx]
			}
		}
		for x := padW + width; x < paddedW; x++ {
			if sx := cols[x]; sx >= 0 {
				dst[x] = srcRow[sx]
			}
		}
	}
	return out, nil
}
