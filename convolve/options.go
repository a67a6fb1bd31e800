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

// Option configures an Engine or a single Apply call.
type Option func(*config)

type config struct {
	device   *accel.Device
	tile     TileParams
	border   imaging.Border
	observer Observer
}

func newConfig(opts []Option) config {
	c := config{border: imaging.BorderReplicate}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDevice runs the device strategies on d instead of accel.Default().
func WithDevice(d *accel.Device) Option {
	return func(c *config) {
		c.device = d
	}
}

// WithTile sets the block shape of the device strategies in pixels.
// A zero tile selects TileParamsFor the device level. Tiles the device
// cannot run are rejected at launch with ErrLaunchRejected.
func WithTile(width, height int) Option {
	return func(c *config) {
		c.tile = TileParams{Width: width, Height: height}
	}
}

// WithBorder selects how pixels outside the image are synthesized.
// The default is imaging.BorderReplicate.
func WithBorder(b imaging.Border) Option {
	return func(c *config) {
		c.border = b
	}
}

// WithObserver installs a per-phase timing hook.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}
