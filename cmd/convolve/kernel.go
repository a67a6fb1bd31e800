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

	"github.com/spf13/cobra"
)

func newKernelCmd() *cobra.Command {
	var kf kernelFlags
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Print a kernel's coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kf.kernel()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== Kernel %dx%d ===\n", k.Width(), k.Height())
			fmt.Fprintln(out, k)
			fmt.Fprintf(out, "sum: %.6g\n", k.Sum())
			return nil
		},
	}
	kf.register(cmd.Flags())
	return cmd
}
