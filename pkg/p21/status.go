// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import "fmt"

// Timeout is the printer's auto power-off setting
type Timeout int

// Timeout values. TimeoutUnknown covers raw bytes outside the table.
const (
	TimeoutNever Timeout = iota
	Timeout15Min
	Timeout30Min
	Timeout60Min
	TimeoutUnknown
)

// TimeoutFromByte maps the raw CONFIG timeout byte to a Timeout
func TimeoutFromByte(b byte) Timeout {
	switch b {
	case 0:
		return TimeoutNever
	case 1:
		return Timeout15Min
	case 2:
		return Timeout30Min
	case 3:
		return Timeout60Min
	default:
		return TimeoutUnknown
	}
}

// Minutes returns the timeout in minutes; ok is false for TimeoutUnknown
func (t Timeout) Minutes() (minutes int, ok bool) {
	switch t {
	case TimeoutNever:
		return 0, true
	case Timeout15Min:
		return 15, true
	case Timeout30Min:
		return 30, true
	case Timeout60Min:
		return 60, true
	default:
		return 0, false
	}
}

// Version is a three-part hardware or firmware version
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// String returns the version as major.minor.patch
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// DeviceConfig is the decoded answer to CONFIG?
type DeviceConfig struct {
	DPI             uint16
	HardwareVersion Version
	FirmwareVersion Version // reported by the device as the second firmware version
	Timeout         Timeout
	Beep            bool
}

// BatteryData is the decoded answer to BATTERY?
//
// The printer reports 99 while charging regardless of the actual charge.
type BatteryData struct {
	Level      int
	LevelKnown bool
	RawLevel   byte
	Charging   bool
}

// BatteryPercent decodes the battery level byte.
//
// The printer encodes the percentage as the hex digits of the byte, so 0x75
// means 75%, not 117%. Bytes with a digit above 9 are rejected.
func BatteryPercent(b byte) (int, error) {
	hi, lo := int(b>>4), int(b&0x0F)
	if hi > 9 || lo > 9 {
		return 0, fmt.Errorf("%w: 0x%02X", ErrBatteryLevelUnknown, b)
	}
	return hi*10 + lo, nil
}
