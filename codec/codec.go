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

// Package codec reads and writes grayscale images as imaging matrices.
//
// PNG and JPEG come from the standard library, BMP and TIFF from
// golang.org/x/image. Color inputs are reduced to luma with
// color.GrayModel. On output samples are rounded and clamped to [0, 255].
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ajroetker/go-convolve/imaging"
)

// ErrUnsupportedFormat is returned for file extensions and streams that no
// registered codec handles.
var ErrUnsupportedFormat = errors.New("codec: unsupported format")

// Format identifies an image container.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultJPEGQuality is used when no quality option is given.
const DefaultJPEGQuality = 95

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Option configures encoding.
type Option func(*options)

type options struct {
	jpegQuality int
}

// WithJPEGQuality sets the JPEG quality in [1, 100].
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.jpegQuality = min(max(q, 1), 100)
	}
}

// Decode reads the image at path as a single-channel matrix.
func Decode(path string) (*imaging.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// DecodeReader decodes any registered format from r.
func DecodeReader(r io.Reader) (*imaging.Matrix, Format, error) {
	img, name, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if err != nil {
		return nil, "", err
	}
	return ToMatrix(img), Format(name), nil
}

// Encode writes m to path in the format implied by its extension.
func Encode(path string, m *imaging.Matrix, opts ...Option) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeWriter(f, m, format, opts...)
}

// EncodeWriter writes m to w in format.
func EncodeWriter(w io.Writer, m *imaging.Matrix, format Format, opts ...Option) error {
	o := options{jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&o)
	}
	gray, err := ToGray(m)
	if err != nil {
		return err
	}
	switch format {
	case FormatPNG:
		return png.Encode(w, gray)
	case FormatJPEG:
		return jpeg.Encode(w, gray, &jpeg.Options{Quality: o.jpegQuality})
	case FormatBMP:
		return bmp.Encode(w, gray)
	case FormatTIFF:
		return tiff.Encode(w, gray, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ToMatrix converts img to luma samples in [0, 255].
func ToMatrix(img image.Image) *imaging.Matrix {
	b := img.Bounds()
	m := imaging.NewMatrix(b.Dx(), b.Dy())
	if g, ok := img.(*image.Gray); ok {
		for y := range b.Dy() {
			row := m.Row(y)
			src := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
			for x, v := range src {
				row[x] = float32(v)
			}
		}
		return m
	}
	for y := range b.Dy() {
		row := m.Row(y)
		for x := range row {
			row[x] = float32(color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y)
		}
	}
	return m
}

// ToGray converts a single-channel matrix to an 8-bit image, rounding and
// clamping every sample.
func ToGray(m *imaging.Matrix) (*image.Gray, error) {
	if m.Empty() || m.Channels() != 1 {
		return nil, fmt.Errorf("%w: cannot encode %v", imaging.ErrBadShape, m)
	}
	g := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
	for y := range m.Height() {
		dst := g.Pix[y*g.Stride : y*g.Stride+m.Width()]
		for x, v := range m.Row(y) {
			dst[x] = uint8(math.Round(float64(min(max(v, 0), 255))))
		}
	}
	return g, nil
}
