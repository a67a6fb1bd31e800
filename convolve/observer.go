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
	"time"
)

// Phase is a stage of a filter call.
type Phase int

const (
	PhasePad      Phase = iota // host-side border padding
	PhaseUpload                // host to device copies of image and filter
	PhaseCompute               // correlation, on the host or in a launch
	PhaseDownload              // device to host copy of the result
)

func (p Phase) String() string {
	switch p {
	case PhasePad:
		return "pad"
	case PhaseUpload:
		return "upload"
	case PhaseCompute:
		return "compute"
	case PhaseDownload:
		return "download"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Event reports one completed phase. Err is the phase's error, if any.
type Event struct {
	Phase    Phase
	Strategy Strategy
	Duration time.Duration
	Err      error
}

// Observer receives an Event after every phase. It is called synchronously
// on the goroutine that called Apply and must not block.
type Observer func(Event)

// observe runs fn as phase and reports it to the configured observer.
func (c *config) observe(phase Phase, strategy Strategy, fn func() error) error {
	if c.observer == nil {
		return fn()
	}
	start := time.Now()
	err := fn()
	c.observer(Event{
		Phase:    phase,
		Strategy: strategy,
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}
