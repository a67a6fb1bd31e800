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

package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ajroetker/go-convolve/imaging"
)

func gradient(w, h int) *imaging.Matrix {
	m := imaging.NewMatrix(w, h)
	for y := range h {
		for x := range w {
			m.Set(x, y, float32((x*7+y*13)%256))
		}
	}
	return m
}

func TestEncodeDecode_Lossless(t *testing.T) {
	src := gradient(17, 9)
	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		var buf bytes.Buffer
		if err := EncodeWriter(&buf, src, f); err != nil {
			t.Fatalf("%s: EncodeWriter: %v", f, err)
		}
		got, format, err := DecodeReader(&buf)
		if err != nil {
			t.Fatalf("%s: DecodeReader: %v", f, err)
		}
		if format != f {
			t.Errorf("format: got %q, want %q", format, f)
		}
		if !imaging.Equal(src, got) {
			t.Errorf("%s: round trip changed samples", f)
		}
	}
}

func TestEncodeDecode_JPEG(t *testing.T) {
	src := imaging.NewMatrix(16, 16)
	src.Fill(128)
	var buf bytes.Buffer
	if err := EncodeWriter(&buf, src, FormatJPEG, WithJPEGQuality(100)); err != nil {
		t.Fatalf("EncodeWriter: %v", err)
	}
	got, _, err := DecodeReader(&buf)
	if err != nil {
		t.Fatalf("DecodeReader: %v", err)
	}
	diff, err := imaging.MaxAbsDiff(src, got)
	if err != nil {
		t.Fatal(err)
	}
	if diff > 2 {
		t.Errorf("flat jpeg drifted by %v", diff)
	}
}

func TestEncode_RoundsAndClamps(t *testing.T) {
	src, _ := imaging.FromSlice([]float32{-20, 0.4, 0.6, 254.5, 300}, 5, 1)
	g, err := ToGray(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 0, 1, 255, 255}
	for i, v := range want {
		if g.Pix[i] != v {
			t.Errorf("pixel %d: got %d, want %d", i, g.Pix[i], v)
		}
	}
	rgb, _ := imaging.FromChannels(make([]float32, 12), 2, 2, 3)
	if _, err := ToGray(rgb); !errors.Is(err, imaging.ErrBadShape) {
		t.Errorf("multi-channel: got %v, want ErrBadShape", err)
	}
}

func TestToMatrix_Color(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 3, 4, 4))
	img.Set(2, 3, color.RGBA{R: 255, A: 255})
	img.Set(3, 3, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	m := ToMatrix(img)
	if m.Width() != 2 || m.Height() != 1 {
		t.Fatalf("shape: got %v", m)
	}
	wantRed := float32(color.GrayModel.Convert(color.RGBA{R: 255, A: 255}).(color.Gray).Y)
	if m.At(0, 0) != wantRed {
		t.Errorf("red luma: got %v, want %v", m.At(0, 0), wantRed)
	}
	if m.At(1, 0) != 255 {
		t.Errorf("white luma: got %v, want 255", m.At(1, 0))
	}
}

func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := gradient(8, 8)
	for _, name := range []string{"a.png", "b.TIFF", "c.bmp"} {
		path := filepath.Join(dir, name)
		if err := Encode(path, src); err != nil {
			t.Fatalf("Encode(%s): %v", name, err)
		}
		got, err := Decode(path)
		if err != nil {
			t.Fatalf("Decode(%s): %v", name, err)
		}
		if !imaging.Equal(src, got) {
			t.Errorf("%s: round trip changed samples", name)
		}
	}
}

func TestUnsupported(t *testing.T) {
	if _, err := FormatFromPath("x.webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(webp): got %v", err)
	}
	if err := Encode(filepath.Join(t.TempDir(), "x.gif"), gradient(2, 2)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(gif): got %v", err)
	}
	if _, _, err := DecodeReader(bytes.NewReader([]byte("not an image"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeReader(garbage): got %v", err)
	}
	if err := EncodeWriter(&bytes.Buffer{}, gradient(2, 2), Format("gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("EncodeWriter(gif): got %v", err)
	}
}
