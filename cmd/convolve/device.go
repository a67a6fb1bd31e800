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

package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-convolve/accel"
	"github.com/ajroetker/go-convolve/convolve"
)

func newDeviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Print the simulated device limits and host CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printDevice(message.NewPrinter(language.English), cmd.OutOrStdout(), accel.DetectProperties())
			return nil
		},
	}
}

func printDevice(p *message.Printer, w io.Writer, props accel.Properties) {
	p.Fprintf(w, "GOOS: %s\n", runtime.GOOS)
	p.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	p.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())
	p.Fprintf(w, "CPU: %s\n", cpuid.CPU.BrandName)
	p.Fprintf(w, "Features: %s\n", strings.Join(cpuid.CPU.FeatureSet(), " "))
	fmt.Fprintln(w)

	p.Fprintf(w, "Device: %s\n", props.Name)
	p.Fprintf(w, "  Level:              %s (%d-byte vectors, no-simd=%v)\n", props.Level, props.Level.Width(), accel.NoSimdEnv())
	p.Fprintf(w, "  Warp size:          %d\n", props.WarpSize)
	p.Fprintf(w, "  Multiprocessors:    %d\n", props.MultiProcessors)
	p.Fprintf(w, "  Threads per block:  %d\n", props.MaxThreadsPerBlock)
	p.Fprintf(w, "  Max block:          %v\n", props.MaxBlockDim)
	p.Fprintf(w, "  Max grid:           %v\n", props.MaxGridDim)
	p.Fprintf(w, "  Shared per block:   %d bytes\n", props.SharedMemPerBlock)
	p.Fprintf(w, "  Constant bank:      %d bytes\n", props.ConstantMemSize)
	p.Fprintf(w, "  Global memory:      %d bytes\n", props.GlobalMemSize)
	p.Fprintf(w, "  Default tile:       %v\n", convolve.TileParamsFor(props.Level))
}
