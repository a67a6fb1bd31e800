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
	"errors"
	"strings"
	"testing"
)

func TestNewKernel(t *testing.T) {
	coeffs := []float32{0, -1, 0, -1, 4, -1, 0, -1, 0}
	k, err := NewKernel(coeffs, 3, 3)
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}
	if rx, ry := k.Radius(); rx != 1 || ry != 1 {
		t.Errorf("Radius: got (%d,%d), want (1,1)", rx, ry)
	}
	if got := k.At(1, 1); got != 4 {
		t.Errorf("At(1,1): got %v, want 4", got)
	}
	if got := k.Sum(); got != 0 {
		t.Errorf("Sum: got %v, want 0", got)
	}

	coeffs[4] = 100
	if k.At(1, 1) != 4 {
		t.Error("NewKernel must copy its input")
	}
	c := k.Coefficients()
	c[0] = 100
	if k.At(0, 0) != 0 {
		t.Error("Coefficients must return a copy")
	}
}

func TestNewKernel_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		width  int
		height int
	}{
		{"zero", 0, 0, 0},
		{"non-square", 15, 3, 5},
		{"even", 16, 4, 4},
		{"length mismatch", 8, 3, 3},
		{"negative", 9, -3, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKernel(make([]float32, tt.n), tt.width, tt.height)
			if !errors.Is(err, ErrBadKernel) {
				t.Errorf("got %v, want ErrBadKernel", err)
			}
		})
	}
}

func TestKernel_Validate(t *testing.T) {
	var nilKernel *Kernel
	if err := nilKernel.Validate(); !errors.Is(err, ErrBadKernel) {
		t.Errorf("nil kernel: got %v, want ErrBadKernel", err)
	}
	if err := (&Kernel{}).Validate(); !errors.Is(err, ErrBadKernel) {
		t.Errorf("zero kernel: got %v, want ErrBadKernel", err)
	}
	if err := MustKernel([]float32{1}, 1, 1).Validate(); err != nil {
		t.Errorf("1x1 kernel: %v", err)
	}
}

func TestKernel_String(t *testing.T) {
	k := MustKernel([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 3)
	s := k.String()
	if lines := strings.Count(s, "\n"); lines != 2 {
		t.Errorf("String: got %d line breaks, want 2:\n%s", lines, s)
	}
	if !strings.Contains(s, "5") || !strings.Contains(s, "9") {
		t.Errorf("String missing coefficients:\n%s", s)
	}
	if got := (&Kernel{}).String(); got != "Kernel(unset)" {
		t.Errorf("String of zero kernel: got %q", got)
	}
}

func TestKernel_Dense(t *testing.T) {
	k, err := NewKernel([]float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	d := k.Dense()
	if r, c := d.Dims(); r != 3 || c != 3 {
		t.Fatalf("Dims = %d, %d; want 3, 3", r, c)
	}
	// Row index is y, column index is x.
	if got := d.At(0, 2); got != 3 {
		t.Errorf("Dense.At(0, 2) = %v, want 3", got)
	}
	if got := d.At(2, 0); got != 7 {
		t.Errorf("Dense.At(2, 0) = %v, want 7", got)
	}
}
