// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
)

// contrastBoost is applied after normalization to keep thin strokes visible
const contrastBoost = 2.0

// enhanceContrast stretches the histogram to the full 0-255 range and then
// scales the distance of every pixel from the mean by contrastBoost.
func enhanceContrast(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Rect)
	if len(src.Pix) == 0 {
		return dst
	}

	lo, hi := uint8(255), uint8(0)
	forEachPixel(src, func(v uint8) {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	})

	var sum int
	i := 0
	forEachPixel(src, func(v uint8) {
		if hi > lo {
			v = uint8((int(v) - int(lo)) * 255 / (int(hi) - int(lo)))
		}
		dst.Pix[i] = v
		sum += int(v)
		i++
	})

	mean := float64(sum)/float64(len(dst.Pix)) + 0.5
	mean = float64(int(mean))
	for i, v := range dst.Pix {
		dst.Pix[i] = clamp8(mean + (float64(v)-mean)*contrastBoost)
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ditherLevels dithers to black and white with Floyd-Steinberg error
// diffusion. White pixels become 1, black pixels 0.
//
// The ditherer diffuses error in linear light, so a mid gray prints roughly
// a fifth of its dots white rather than half.
func ditherLevels(gray *image.Gray) []uint8 {
	d := dither.NewDitherer([]color.Color{color.Black, color.White})
	d.Matrix = dither.FloydSteinberg
	pal := d.DitherPaletted(gray)

	white := uint8(pal.Palette.Index(color.White))
	levels := make([]uint8, 0, pal.Rect.Dx()*pal.Rect.Dy())
	b := pal.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if pal.ColorIndexAt(x, y) == white {
				levels = append(levels, 1)
			} else {
				levels = append(levels, 0)
			}
		}
	}
	return levels
}
