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

// Command convolve filters grayscale images on the host or on the simulated
// accelerator.
//
// Usage:
//
//	convolve apply -i in.png -o out.png --preset gaussian --size 7 --sigma 2
//	convolve apply -i in.png -o out.tiff --coeffs 0,-1,0,-1,5,-1,0,-1,0 --strategy constant
//	convolve compare -i in.png --preset log --tile 32x8
//	convolve kernel --preset gaussian --size 5
//	convolve device
//
// Device limits can be overridden with CONVOLVE_SHARED_MEM,
// CONVOLVE_GLOBAL_MEM and CONVOLVE_SMS; CONVOLVE_NO_SIMD forces the scalar
// level. Phase timings are logged at -v=2.
package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := newRootCmd().Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
