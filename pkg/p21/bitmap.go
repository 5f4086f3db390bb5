// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Mode selects how grayscale pixels are reduced before packing
type Mode int

// Encoding modes
const (
	// Mode1Bit dithers to black and white, 8 pixels per byte
	Mode1Bit Mode = iota
	// Mode2Bit quantizes to four gray levels, 4 pixels per byte
	Mode2Bit
)

// ParseMode parses "1bit" or "2bit"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "1bit", "1":
		return Mode1Bit, nil
	case "2bit", "2":
		return Mode2Bit, nil
	default:
		return 0, fmt.Errorf("unknown bitmap mode %q (use 1bit or 2bit)", s)
	}
}

// String returns the mode name accepted by ParseMode
func (m Mode) String() string {
	switch m {
	case Mode1Bit:
		return "1bit"
	case Mode2Bit:
		return "2bit"
	default:
		return "unknown"
	}
}

// BitsPerPixel returns the packed sample width
func (m Mode) BitsPerPixel() int {
	if m == Mode2Bit {
		return 2
	}
	return 1
}

// canvas returns the bounding box for fitted images. Every row of the box
// packs into RasterRowBytes, so a full canvas is exactly RasterSize bytes.
func (m Mode) canvas() (width, height int) {
	return RasterRowBytes * 8 / m.BitsPerPixel(), LabelHeightDots
}

// Encoder converts images into printer rasters
type Encoder struct {
	Mode Mode
	// Fit rotates landscape images and scales them into the label canvas.
	// When false the image is packed at its own size.
	Fit bool
}

// NewEncoder returns an encoder that fits images to the label
func NewEncoder(mode Mode) *Encoder {
	return &Encoder{Mode: mode, Fit: true}
}

// Encode converts img into a padded raster of exactly RasterSize bytes
func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	gray := toGray(img)

	if e.Fit {
		if gray.Rect.Dx() > gray.Rect.Dy() {
			gray = rotate90(gray)
		}
		w, h := e.Mode.canvas()
		gray = fitToCanvas(gray, w, h)
	}

	var levels []uint8
	switch e.Mode {
	case Mode2Bit:
		levels = make([]uint8, 0, len(gray.Pix))
		forEachPixel(gray, func(v uint8) {
			levels = append(levels, Quantize2Bit(v))
		})
	case Mode1Bit:
		levels = ditherLevels(enhanceContrast(gray))
	default:
		return nil, fmt.Errorf("unsupported bitmap mode %d", e.Mode)
	}

	return PadRaster(Pack(levels, e.Mode.BitsPerPixel()))
}

// Quantize2Bit reduces an 8-bit intensity to one of four levels
func Quantize2Bit(v uint8) uint8 {
	switch {
	case v < 64:
		return 0
	case v < 128:
		return 1
	case v < 192:
		return 2
	default:
		return 3
	}
}

// Pack packs samples of bpp bits (1, 2, 4 or 8) into bytes, most significant
// bits first. A trailing partial byte is zero filled.
func Pack(levels []uint8, bpp int) []byte {
	perByte := 8 / bpp
	mask := uint8(1<<bpp - 1)
	out := make([]byte, (len(levels)*bpp+7)/8)

	for i, v := range levels {
		shift := 8 - bpp*(i%perByte+1)
		out[i/perByte] |= (v & mask) << shift
	}
	return out
}

// PadRaster pads packed data with white up to RasterSize bytes
func PadRaster(data []byte) ([]byte, error) {
	if len(data) > RasterSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrOversize, len(data), RasterSize)
	}

	out := make([]byte, RasterSize)
	n := copy(out, data)
	for i := n; i < RasterSize; i++ {
		out[i] = RasterPadByte
	}
	return out, nil
}

// toGray converts any image to an 8-bit grayscale image anchored at 0,0
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// rotate90 rotates the image 90 degrees clockwise
func rotate90(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetGray(h-1-y, x, src.GrayAt(x, y))
		}
	}
	return dst
}

// fitToCanvas scales src with nearest neighbour sampling to fit inside
// width x height, preserving aspect ratio. The result is as wide as the
// canvas, with the image at the left edge and white filling the rest.
func fitToCanvas(src *image.Gray, width, height int) *image.Gray {
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == 0 || sh == 0 {
		return image.NewGray(image.Rect(0, 0, width, 0))
	}

	scale := float64(width) / float64(sw)
	if s := float64(height) / float64(sh); s < scale {
		scale = s
	}
	dw := clampDim(int(float64(sw)*scale+0.5), width)
	dh := clampDim(int(float64(sh)*scale+0.5), height)

	dst := image.NewGray(image.Rect(0, 0, width, dh))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, image.Rect(0, 0, dw, dh), src, src.Rect, draw.Src, nil)
	return dst
}

func clampDim(v, max int) int {
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}

// forEachPixel visits pixels in row-major order
func forEachPixel(img *image.Gray, fn func(v uint8)) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(img.GrayAt(x, y).Y)
		}
	}
}
