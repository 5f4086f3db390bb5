// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"errors"
	"fmt"
)

var (
	// ErrBadPrefix is returned when a response does not start with the expected prefix
	ErrBadPrefix = errors.New("response prefix mismatch")
	// ErrBadLength is returned when a framed payload has the wrong size
	ErrBadLength = errors.New("response payload length mismatch")
	// ErrLengthMismatch is returned when a payload does not fit the decode layout
	ErrLengthMismatch = errors.New("payload does not match layout size")
	// ErrOversize is returned when a packed raster exceeds the printer buffer
	ErrOversize = errors.New("raster exceeds printer buffer")
	// ErrTimeout is returned when the device does not answer within ReadTimeout
	ErrTimeout = errors.New("no response before read timeout")
	// ErrBatteryLevelUnknown is returned for battery bytes outside the BCD range
	ErrBatteryLevelUnknown = errors.New("battery level outside documented range")
)

// FrameErrorKind identifies why a response could not be framed
type FrameErrorKind int

const (
	FrameBadPrefix FrameErrorKind = iota
	FrameBadLength
)

// FrameError describes a malformed status response
type FrameError struct {
	Kind   FrameErrorKind
	Prefix string
	Raw    []byte
	Got    int
	Want   int
}

// Error implements the error interface
func (e *FrameError) Error() string {
	switch e.Kind {
	case FrameBadPrefix:
		return fmt.Sprintf("invalid response (expected prefix %q): %x", e.Prefix, e.Raw)
	case FrameBadLength:
		return fmt.Sprintf("invalid response (payload %d bytes, expected %d): %x", e.Got, e.Want, e.Raw)
	default:
		return fmt.Sprintf("invalid response: %x", e.Raw)
	}
}

// Unwrap exposes the matching sentinel for errors.Is
func (e *FrameError) Unwrap() error {
	if e.Kind == FrameBadPrefix {
		return ErrBadPrefix
	}
	return ErrBadLength
}

// TransportError wraps an I/O failure on the serial device
type TransportError struct {
	Op     string // "open", "write" or "read"
	Device string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Device, e.Err)
}

// Unwrap returns the underlying I/O error
func (e *TransportError) Unwrap() error {
	return e.Err
}
