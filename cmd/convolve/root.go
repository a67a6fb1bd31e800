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
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-convolve/convolve"
	"github.com/ajroetker/go-convolve/imaging"
	"github.com/ajroetker/go-convolve/presets"
)

var errBadFlag = errors.New("invalid flag value")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "convolve",
		Short:        "Apply 2-D FIR filters to grayscale images",
		SilenceUsage: true,
	}
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newApplyCmd(), newCompareCmd(), newKernelCmd(), newDeviceCmd())
	return root
}

// kernelFlags select the filter kernel.
type kernelFlags struct {
	preset string
	size   int
	sigma  float64
	coeffs string
}

func (f *kernelFlags) register(fs *pflag.FlagSet) {
	def := presets.DefaultParams()
	names := lo.Map(presets.Kinds(), func(k presets.Kind, _ int) string { return string(k) })
	fs.StringVarP(&f.preset, "preset", "p", string(presets.KindGaussian), "kernel preset ("+strings.Join(names, ", ")+")")
	fs.IntVar(&f.size, "size", def.Size, "kernel size for gaussian and box")
	fs.Float64Var(&f.sigma, "sigma", def.Sigma, "standard deviation for gaussian")
	fs.StringVar(&f.coeffs, "coeffs", "", "comma-separated row-major coefficients of a square kernel; overrides --preset")
}

func (f *kernelFlags) kernel() (*imaging.Kernel, error) {
	if f.coeffs != "" {
		return parseCoefficients(f.coeffs)
	}
	return presets.Build(presets.Kind(f.preset), presets.Params{Size: f.size, Sigma: f.sigma})
}

// parseCoefficients reads n*n comma-separated values as an n x n kernel.
func parseCoefficients(s string) (*imaging.Kernel, error) {
	fields := strings.Split(s, ",")
	coeffs := make([]float32, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: --coeffs: %w", errBadFlag, err)
		}
		coeffs = append(coeffs, float32(v))
	}
	n := int(math.Round(math.Sqrt(float64(len(coeffs)))))
	return imaging.NewKernel(coeffs, n, n)
}

// engineFlags configure how the filter runs.
type engineFlags struct {
	strategy string
	tile     string
	border   string
}

func (f *engineFlags) register(fs *pflag.FlagSet, withStrategy bool) {
	if withStrategy {
		fs.StringVarP(&f.strategy, "strategy", "s", convolve.SharedTile.String(),
			"execution strategy (sequential, global, constant, shared)")
	}
	fs.StringVar(&f.tile, "tile", "", "device block shape as WxH; empty selects the level default")
	fs.StringVar(&f.border, "border", imaging.BorderReplicate.String(), "border policy (replicate, zero, mirror, wrap)")
}

func (f *engineFlags) options() ([]convolve.Option, error) {
	border, err := imaging.ParseBorder(f.border)
	if err != nil {
		return nil, err
	}
	opts := []convolve.Option{
		convolve.WithBorder(border),
		convolve.WithObserver(logPhase),
	}
	if f.tile != "" {
		w, h, err := parseTile(f.tile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, convolve.WithTile(w, h))
	}
	return opts, nil
}

// parseTile reads a block shape written as WxH.
func parseTile(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: tile %q, want WxH", errBadFlag, s)
	}
	if w, err = strconv.Atoi(ws); err == nil {
		h, err = strconv.Atoi(hs)
	}
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: tile %q, want positive WxH", errBadFlag, s)
	}
	return w, h, nil
}

func logPhase(ev convolve.Event) {
	if ev.Err != nil {
		klog.ErrorS(ev.Err, "Phase failed", "phase", ev.Phase, "strategy", ev.Strategy)
		return
	}
	klog.V(2).InfoS("Phase done", "phase", ev.Phase, "strategy", ev.Strategy, "duration", ev.Duration)
}
