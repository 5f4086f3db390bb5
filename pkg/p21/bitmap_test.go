// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

// solidGray creates a w x h image filled with v
func solidGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// ============================================================
// Packing Tests
// ============================================================

func TestQuantize2Bit(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 0}, {63, 0},
		{64, 1}, {127, 1},
		{128, 2}, {191, 2},
		{192, 3}, {255, 3},
	}
	for _, tt := range tests {
		if got := Quantize2Bit(tt.in); got != tt.want {
			t.Errorf("Quantize2Bit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPack(t *testing.T) {
	tests := []struct {
		name   string
		levels []uint8
		bpp    int
		want   []byte
	}{
		{"2bit msb first", []uint8{0, 1, 2, 3}, 2, []byte{0x1B}},
		{"2bit partial byte", []uint8{3, 3, 3, 3, 3}, 2, []byte{0xFF, 0xC0}},
		{"1bit alternating", []uint8{1, 0, 1, 0, 1, 0, 1, 0}, 1, []byte{0xAA}},
		{"1bit partial byte", []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1}, 1, []byte{0xFF, 0x80}},
		{"empty", nil, 1, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.levels, tt.bpp)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestPackLength(t *testing.T) {
	for _, bpp := range []int{1, 2} {
		for n := 0; n < 40; n++ {
			got := len(Pack(make([]uint8, n), bpp))
			want := (n*bpp + 7) / 8
			if got != want {
				t.Errorf("bpp=%d n=%d: len = %d, want %d", bpp, n, got, want)
			}
		}
	}
}

func TestPadRaster(t *testing.T) {
	out, err := PadRaster([]byte{0x00, 0x01})
	if err != nil {
		t.Fatalf("PadRaster error: %v", err)
	}
	if len(out) != RasterSize {
		t.Fatalf("len = %d, want %d", len(out), RasterSize)
	}
	if out[0] != 0x00 || out[1] != 0x01 {
		t.Errorf("data not preserved: %x", out[:2])
	}
	if !bytes.Equal(out[2:], bytes.Repeat([]byte{0xFF}, RasterSize-2)) {
		t.Error("padding should be 0xFF")
	}

	exact := bytes.Repeat([]byte{0x12}, RasterSize)
	out, err = PadRaster(exact)
	if err != nil || !bytes.Equal(out, exact) {
		t.Errorf("exact size raster should pass unchanged (err=%v)", err)
	}

	if _, err := PadRaster(make([]byte, RasterSize+1)); !errors.Is(err, ErrOversize) {
		t.Errorf("expected ErrOversize, got %v", err)
	}
}

// ============================================================
// Encoder Tests
// ============================================================

func TestEncode_WhiteLabel1Bit(t *testing.T) {
	img := solidGray(LabelWidthDots, LabelHeightDots, 0xFF)
	out, err := NewEncoder(Mode1Bit).Encode(img)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{0xFF}, RasterSize)) {
		t.Error("white label should encode to 3408 bytes of 0xFF")
	}
}

func TestEncode_SmallImagePadded(t *testing.T) {
	enc := &Encoder{Mode: Mode1Bit, Fit: false}
	out, err := enc.Encode(solidGray(LabelWidthDots, 100, 0x00))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(out) != RasterSize {
		t.Fatalf("len = %d, want %d", len(out), RasterSize)
	}

	packed := LabelWidthDots * 100 / 8
	if !bytes.Equal(out[:packed], make([]byte, packed)) {
		t.Error("black rows should pack to 0x00")
	}
	if !bytes.Equal(out[packed:], bytes.Repeat([]byte{0xFF}, RasterSize-packed)) {
		t.Error("remainder should be padded with 0xFF")
	}
}

func TestEncode_Oversize(t *testing.T) {
	// 96x284 at 2 bits per pixel is twice the printer buffer
	enc := &Encoder{Mode: Mode2Bit, Fit: false}
	_, err := enc.Encode(solidGray(LabelWidthDots, LabelHeightDots, 0x80))
	if !errors.Is(err, ErrOversize) {
		t.Errorf("expected ErrOversize, got %v", err)
	}
}

func TestEncode_2BitTestPatternFillsLabel(t *testing.T) {
	pattern := DiagonalTestPattern(48, LabelHeightDots)
	enc := &Encoder{Mode: Mode2Bit, Fit: false}
	out, err := enc.Encode(pattern)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	levels := make([]uint8, 0, len(pattern.Pix))
	for _, v := range pattern.Pix {
		levels = append(levels, Quantize2Bit(v))
	}
	if !bytes.Equal(out, Pack(levels, 2)) {
		t.Error("48x284 2-bit image should fill the raster without padding")
	}
}

func TestEncode_RotatesLandscape(t *testing.T) {
	// 200x100 rotates to 100x200 and fits the 48 dot 2-bit canvas as 48x96
	out, err := NewEncoder(Mode2Bit).Encode(solidGray(200, 100, 0x00))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	rows := 96
	black := rows * RasterRowBytes
	if !bytes.Equal(out[:black], make([]byte, black)) {
		t.Errorf("expected %d black rows", rows)
	}
	if out[black] != 0xFF {
		t.Errorf("row %d should be padding, got 0x%02X", rows, out[black])
	}
}

func TestEncode_NarrowImageKeepsRowWidth(t *testing.T) {
	out, err := NewEncoder(Mode1Bit).Encode(solidGray(10, LabelHeightDots, 0x00))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// Every row: 10 black dots then white to the canvas edge
	want := append([]byte{0x00, 0x3F}, bytes.Repeat([]byte{0xFF}, RasterRowBytes-2)...)
	for row := 0; row < LabelHeightDots; row++ {
		got := out[row*RasterRowBytes : (row+1)*RasterRowBytes]
		if !bytes.Equal(got, want) {
			t.Fatalf("row %d = %x, want %x", row, got, want)
		}
	}
}

func TestEncode_ScalesUp(t *testing.T) {
	// 24x71 scales by 4 to the full 96x284 label
	out, err := NewEncoder(Mode1Bit).Encode(solidGray(24, 71, 0x00))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !bytes.Equal(out, make([]byte, RasterSize)) {
		t.Error("scaled black image should cover the whole label")
	}
}

func TestEncode_AcceptsColorImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, LabelWidthDots, LabelHeightDots))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.Black)

	out, err := NewEncoder(Mode1Bit).Encode(img)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if out[0]&0x80 != 0 {
		t.Errorf("first dot should be black, got byte 0x%02X", out[0])
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"1bit", "2bit"} {
		m, err := ParseMode(s)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", s, err)
		}
		if m.String() != s {
			t.Errorf("ParseMode(%q).String() = %q", s, m.String())
		}
	}
	if _, err := ParseMode("8bit"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
