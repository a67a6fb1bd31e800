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
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-convolve/codec"
	"github.com/ajroetker/go-convolve/convolve"
	"github.com/ajroetker/go-convolve/imaging"
)

func newCompareCmd() *cobra.Command {
	var (
		kf        kernelFlags
		ef        engineFlags
		input     string
		width     int
		height    int
		tolerance float64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every strategy on one image and report timings and agreement",
		Long: `Run every strategy on the same input and report the wall time of each and
the largest absolute difference from the sequential result. Without --input a
synthetic gradient of --width x --height is used. The command fails if any
strategy differs from sequential by more than --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kf.kernel()
			if err != nil {
				return err
			}
			opts, err := ef.options()
			if err != nil {
				return err
			}
			var img *imaging.Matrix
			if input != "" {
				if img, err = codec.Decode(input); err != nil {
					return err
				}
			} else {
				img = gradient(width, height)
			}

			eng := convolve.NewEngine(opts...)
			p := message.NewPrinter(language.English)
			title := cases.Title(language.English)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			p.Fprintf(w, "Image %dx%d (%d px), kernel %dx%d, tile %v\n",
				img.Width(), img.Height(), img.Len(), k.Width(), k.Height(), eng.Tile())
			fmt.Fprintln(w, "Strategy\tTime\tMpx/s\tMax diff")

			var reference *imaging.Matrix
			var worst float64
			for _, s := range convolve.Strategies() {
				start := time.Now()
				out, err := eng.Apply(img, k, s)
				if err != nil {
					return fmt.Errorf("%v: %w", s, err)
				}
				elapsed := time.Since(start)
				if reference == nil {
					reference = out
				}
				diff, err := imaging.MaxAbsDiff(reference, out)
				if err != nil {
					return err
				}
				worst = max(worst, diff)
				rate := float64(img.Len()) / elapsed.Seconds() / 1e6
				p.Fprintf(w, "%s\t%v\t%.2f\t%.4g\n", title.String(s.String()), elapsed.Round(time.Microsecond), rate, diff)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if worst > tolerance {
				return fmt.Errorf("strategies disagree: max diff %.4g exceeds %.4g", worst, tolerance)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&input, "input", "i", "", "input image; empty uses a synthetic gradient")
	fs.IntVar(&width, "width", 512, "synthetic image width")
	fs.IntVar(&height, "height", 512, "synthetic image height")
	fs.Float64Var(&tolerance, "tolerance", 0.01, "largest accepted difference from sequential")
	kf.register(fs)
	ef.register(fs, false)
	return cmd
}

// gradient returns a diagonal ramp with values in [0, 255].
func gradient(width, height int) *imaging.Matrix {
	m := imaging.NewMatrix(width, height)
	for y := range height {
		row := m.Row(y)
		for x := range row {
			row[x] = float32((x + y) % 256)
		}
	}
	return m
}
