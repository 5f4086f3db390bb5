// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"bytes"
	"testing"
)

func TestBuildPrintCommand_Layout(t *testing.T) {
	raster := bytes.Repeat([]byte{0xAA}, RasterSize)
	cmd := BuildPrintCommand(raster, 15, 1)

	header := "\x1b!o\r\n" +
		"SIZE 14.0 mm,40.0 mm\r\n" +
		"GAP 5.0 mm,0 mm\r\n" +
		"DIRECTION 1,1\r\n" +
		"DENSITY 15\r\n" +
		"CLS\r\n" +
		"BITMAP 0,0,12,284,1,"
	trailer := "\r\nPRINT 1\r\n"

	if !bytes.HasPrefix(cmd, []byte(header)) {
		t.Fatalf("unexpected header:\n%q", cmd[:len(header)])
	}
	if !bytes.HasSuffix(cmd, []byte(trailer)) {
		t.Errorf("unexpected trailer: %q", cmd[len(cmd)-len(trailer):])
	}
	if len(cmd) != len(header)+RasterSize+len(trailer) {
		t.Errorf("length = %d, want %d", len(cmd), len(header)+RasterSize+len(trailer))
	}
	if !bytes.Equal(cmd[len(header):len(header)+RasterSize], raster) {
		t.Error("raster bytes not copied verbatim")
	}
}

func TestBuildPrintCommand_BitmapIndependentOfParams(t *testing.T) {
	tests := []struct {
		density int
		copies  uint16
		want    string
	}{
		{1, 1, "PRINT 1\r\n"},
		{8, 3, "PRINT 3\r\n"},
		{15, 65535, "PRINT 65535\r\n"},
		{0, 0, "PRINT 0\r\n"},
	}

	for _, tc := range tests {
		cmd := BuildPrintCommand(make([]byte, RasterSize), tc.density, tc.copies)
		if !bytes.Contains(cmd, []byte("\r\nBITMAP 0,0,12,284,1,")) {
			t.Errorf("density=%d copies=%d: BITMAP directive changed", tc.density, tc.copies)
		}
		if !bytes.HasSuffix(cmd, []byte(tc.want)) {
			t.Errorf("density=%d copies=%d: tail = %q, want %q", tc.density, tc.copies, cmd[len(cmd)-len(tc.want):], tc.want)
		}
	}
}

func TestBuildPrintCommand_Density(t *testing.T) {
	cmd := BuildPrintCommand(nil, 7, 1)
	if !bytes.Contains(cmd, []byte("\r\nDENSITY 7\r\nCLS\r\n")) {
		t.Errorf("density directive missing: %q", cmd)
	}
}
