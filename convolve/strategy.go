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
	"strings"
)

// Strategy selects where the filter runs and which memory tiers it uses.
type Strategy int

const (
	// Sequential runs the reference implementation on the calling goroutine.
	Sequential Strategy = iota

	// Global reads image and filter from device global memory on every tap.
	Global

	// Constant stages the filter in the device constant bank.
	Constant

	// SharedTile stages a halo-expanded image tile per block in shared
	// memory and the filter in the constant bank.
	SharedTile
)

// Strategies returns every strategy, sequential first.
func Strategies() []Strategy {
	return []Strategy{Sequential, Global, Constant, SharedTile}
}

// String returns the strategy name accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case Global:
		return "global"
	case Constant:
		return "constant"
	case SharedTile:
		return "shared"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// OnDevice reports whether the strategy runs on the accelerator.
func (s Strategy) OnDevice() bool {
	return s == Global || s == Constant || s == SharedTile
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequential", "seq", "host":
		return Sequential, nil
	case "global":
		return Global, nil
	case "constant", "const":
		return Constant, nil
	case "shared", "shared-tile", "tile":
		return SharedTile, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
