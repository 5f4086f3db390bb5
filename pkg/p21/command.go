// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"bytes"
	"fmt"
)

// BuildPrintCommand assembles the full print stream for one raster.
//
// The raster is sent as-is; callers normally pass the output of
// Encoder.Encode. density and copies are not range checked here.
func BuildPrintCommand(raster []byte, density int, copies uint16) []byte {
	var buf bytes.Buffer
	buf.Grow(len(raster) + 128)

	writeLine(&buf, cmdReset)
	writeLine(&buf, cmdSize)
	writeLine(&buf, cmdGap)
	writeLine(&buf, cmdDirection)
	writeLine(&buf, fmt.Sprintf("DENSITY %d", density))
	writeLine(&buf, cmdClear)

	// BITMAP x,y,width-bytes,height,mode,data
	fmt.Fprintf(&buf, "BITMAP 0,0,%d,%d,1,", RasterRowBytes, LabelHeightDots)
	buf.Write(raster)
	buf.WriteString(CRLF)

	writeLine(&buf, fmt.Sprintf("PRINT %d", copies))
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, line string) {
	buf.WriteString(line)
	buf.WriteString(CRLF)
}
