// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package p21 implements the serial protocol spoken by the Nelko P21 thermal
// label printer.
//
// The printer accepts line-oriented ASCII commands terminated by CRLF and answers
// status queries with an ASCII prefix followed by a fixed-size binary payload.
// Labels are printed by sending a TSPL-style command stream carrying a packed
// bitmap. This package provides response framing, status decoding, bitmap
// encoding, command building and a scoped serial transport.
package p21

import "time"

// Serial link parameters
const (
	BaudRate    = 115200
	ReadTimeout = 1 * time.Second
)

// Line terminator used by requests and responses
const CRLF = "\r\n"

// Status queries and their response framing
const (
	QueryConfig  = "CONFIG?"
	QueryBattery = "BATTERY?"

	PrefixConfig  = "CONFIG "
	PrefixBattery = "BATTERY "

	ConfigPayloadSize  = 10
	BatteryPayloadSize = 2
)

// Label geometry. The printer raster buffer is 96x284 dots at 1 bit per dot.
const (
	LabelWidthDots  = 96
	LabelHeightDots = 284
	RasterRowBytes  = LabelWidthDots / 8
	RasterSize      = RasterRowBytes * LabelHeightDots // 3408
	RasterPadByte   = 0xFF
)

// Print command directives
const (
	cmdReset     = "\x1b!o"
	cmdSize      = "SIZE 14.0 mm,40.0 mm"
	cmdGap       = "GAP 5.0 mm,0 mm"
	cmdDirection = "DIRECTION 1,1"
	cmdClear     = "CLS"
)

// Density limits accepted by the printer
const (
	DensityMin = 1
	DensityMax = 15
)
