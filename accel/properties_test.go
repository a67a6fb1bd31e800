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

package accel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		name  string
		width int
	}{
		{LevelScalar, "scalar", 16},
		{LevelSSE2, "sse2", 16},
		{LevelAVX2, "avx2", 32},
		{LevelAVX512, "avx512", 64},
		{LevelNEON, "neon", 16},
		{LevelSVE, "sve", 16},
		{Level(99), "unknown", 16},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.name {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.name)
		}
		if got := tt.level.Width(); got != tt.width {
			t.Errorf("Level(%d).Width() = %d, want %d", int(tt.level), got, tt.width)
		}
	}
}

func TestDetectProperties(t *testing.T) {
	p := DetectProperties()
	if err := p.Validate(); err != nil {
		t.Fatalf("detected properties invalid: %v", err)
	}
	if p.Level != CurrentLevel() {
		t.Errorf("Level: got %v, want %v", p.Level, CurrentLevel())
	}
	if p.WarpSize != CurrentLevel().Width()/4 {
		t.Errorf("WarpSize: got %d, want %d", p.WarpSize, CurrentLevel().Width()/4)
	}
	if p.MultiProcessors != runtime.GOMAXPROCS(0) {
		t.Errorf("MultiProcessors: got %d, want %d", p.MultiProcessors, runtime.GOMAXPROCS(0))
	}
}

func TestDetectProperties_EnvOverrides(t *testing.T) {
	t.Setenv("CONVOLVE_SHARED_MEM", "1024")
	t.Setenv("CONVOLVE_GLOBAL_MEM", "4096")
	t.Setenv("CONVOLVE_SMS", "3")

	p := DetectProperties()
	if p.SharedMemPerBlock != 1024 {
		t.Errorf("SharedMemPerBlock: got %d, want 1024", p.SharedMemPerBlock)
	}
	if p.GlobalMemSize != 4096 {
		t.Errorf("GlobalMemSize: got %d, want 4096", p.GlobalMemSize)
	}
	if p.MultiProcessors != 3 {
		t.Errorf("MultiProcessors: got %d, want 3", p.MultiProcessors)
	}

	t.Setenv("CONVOLVE_SMS", "not-a-number")
	if got := DetectProperties().MultiProcessors; got != runtime.GOMAXPROCS(0) {
		t.Errorf("invalid override should be ignored: got %d SMs", got)
	}
}

func TestNoSimdEnv(t *testing.T) {
	t.Setenv("CONVOLVE_NO_SIMD", "")
	if NoSimdEnv() {
		t.Error("NoSimdEnv() = true for empty value")
	}
	t.Setenv("CONVOLVE_NO_SIMD", "false")
	if NoSimdEnv() {
		t.Error("NoSimdEnv() = true for false")
	}
	t.Setenv("CONVOLVE_NO_SIMD", "yes")
	if !NoSimdEnv() {
		t.Error("NoSimdEnv() = false for non-boolean value")
	}
}

func TestScheduler_RunsEveryBlockOnce(t *testing.T) {
	s := newScheduler(4)
	defer s.close()

	for _, n := range []int{0, 1, 3, 100} {
		counts := make([]atomic.Int32, n)
		s.run(n, func(i int) {
			counts[i].Add(1)
		})
		for i := range counts {
			if got := counts[i].Load(); got != 1 {
				t.Errorf("n=%d: block %d ran %d times, want 1", n, i, got)
			}
		}
	}
}
