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
	"os"
	"strconv"
)

// Level is the host vector instruction set backing the simulated device.
// It determines the warp width: the number of float32 lanes that a single
// vector instruction covers.
type Level int

const (
	// LevelScalar indicates no SIMD, pure Go execution.
	LevelScalar Level = iota

	// LevelSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	LevelSSE2

	// LevelAVX2 indicates AVX2 instructions (256-bit).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 instructions (512-bit).
	LevelAVX512

	// LevelNEON indicates ARM NEON instructions (128-bit).
	LevelNEON

	// LevelSVE indicates ARM SVE instructions (scalable vector).
	LevelSVE
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// Width returns the vector register width in bytes for the level.
// Scalar mode still reports 16 bytes so warps are never narrower than 4 lanes.
func (l Level) Width() int {
	switch l {
	case LevelAVX2:
		return 32
	case LevelAVX512:
		return 64
	default:
		return 16
	}
}

// detectedLevel is set by init() in level_*.go files.
var detectedLevel Level

// CurrentLevel returns the instruction set detected for this process.
func CurrentLevel() Level {
	return detectedLevel
}

// NoSimdEnv checks if the CONVOLVE_NO_SIMD environment variable is set.
// When set, the device reports LevelScalar regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("CONVOLVE_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
