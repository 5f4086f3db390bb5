// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"image"
	"image/color"
)

// DiagonalTestPattern draws 45 degree lines every 4 dots from all four
// corners on a white background. At 48x284 it fills the label in Mode2Bit.
func DiagonalTestPattern(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	black := color.Gray{Y: 0}
	line := func(x0, y0, x1, y1 int) {
		// Only 45 degree lines are drawn, so step both axes together
		dx, dy := sign(x1-x0), sign(y1-y0)
		x, y := x0, y0
		for {
			if image.Pt(x, y).In(img.Rect) {
				img.SetGray(x, y, black)
			}
			if x == x1 && y == y1 {
				return
			}
			x += dx
			y += dy
		}
	}

	for x := 0; x < width; x += 4 {
		line(x, 0, 0, x)
		line(width-x, height, width, height-x)
	}
	for y := 0; y < height; y += 4 {
		line(0, y, y, 0)
		line(width, height-y, width-y, height)
	}
	return img
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
