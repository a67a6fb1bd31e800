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
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-convolve/codec"
	"github.com/ajroetker/go-convolve/convolve"
)

func newApplyCmd() *cobra.Command {
	var (
		kf         kernelFlags
		ef         engineFlags
		input      string
		output     string
		iterations int
		quality    int
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Filter an image and write the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if iterations < 1 {
				return fmt.Errorf("%w: --iterations %d", errBadFlag, iterations)
			}
			strategy, err := convolve.ParseStrategy(ef.strategy)
			if err != nil {
				return err
			}
			k, err := kf.kernel()
			if err != nil {
				return err
			}
			opts, err := ef.options()
			if err != nil {
				return err
			}
			img, err := codec.Decode(input)
			if err != nil {
				return err
			}
			klog.V(1).InfoS("Loaded image", "path", input, "width", img.Width(), "height", img.Height())

			eng := convolve.NewEngine(opts...)
			start := time.Now()
			for range iterations {
				if img, err = eng.Apply(img, k, strategy); err != nil {
					return err
				}
			}
			klog.InfoS("Applied filter", "strategy", strategy, "kernel", fmt.Sprintf("%dx%d", k.Width(), k.Height()),
				"iterations", iterations, "elapsed", time.Since(start))

			if err := codec.Encode(output, img, codec.WithJPEGQuality(quality)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image saved in %s\n", output)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&input, "input", "i", "", "input image (png, jpeg, bmp, tiff)")
	fs.StringVarP(&output, "output", "o", "", "output image; format follows the extension")
	fs.IntVarP(&iterations, "iterations", "n", 1, "apply the filter this many times")
	fs.IntVar(&quality, "quality", codec.DefaultJPEGQuality, "JPEG quality")
	kf.register(fs)
	ef.register(fs, true)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
