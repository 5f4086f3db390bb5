// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// rawConfig is the big-endian wire layout of a CONFIG payload
type rawConfig struct {
	DPI      uint16
	Hardware [3]uint8
	Firmware [3]uint8
	Timeout  uint8
	Beep     bool
}

// rawBattery is the wire layout of a BATTERY payload
type rawBattery struct {
	Level    uint8
	Charging bool
}

// decodeLayout decodes payload into v, which must be a fixed-size struct
func decodeLayout(payload []byte, v interface{}) error {
	size := binary.Size(v)
	if len(payload) != size {
		return fmt.Errorf("%w: got %d bytes, layout is %d", ErrLengthMismatch, len(payload), size)
	}
	if err := binary.Read(bytes.NewReader(payload), binary.BigEndian, v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

// DecodeConfig decodes a framed CONFIG payload.
// Unknown timeout values are kept as TimeoutUnknown rather than failing.
func DecodeConfig(payload []byte) (DeviceConfig, error) {
	var raw rawConfig
	if err := decodeLayout(payload, &raw); err != nil {
		return DeviceConfig{}, err
	}

	return DeviceConfig{
		DPI:             raw.DPI,
		HardwareVersion: Version{Major: raw.Hardware[0], Minor: raw.Hardware[1], Patch: raw.Hardware[2]},
		FirmwareVersion: Version{Major: raw.Firmware[0], Minor: raw.Firmware[1], Patch: raw.Firmware[2]},
		Timeout:         TimeoutFromByte(raw.Timeout),
		Beep:            raw.Beep,
	}, nil
}

// DecodeBattery decodes a framed BATTERY payload.
// A level byte outside the documented range leaves LevelKnown false.
func DecodeBattery(payload []byte) (BatteryData, error) {
	var raw rawBattery
	if err := decodeLayout(payload, &raw); err != nil {
		return BatteryData{}, err
	}

	data := BatteryData{
		RawLevel: raw.Level,
		Charging: raw.Charging,
	}
	if level, err := BatteryPercent(raw.Level); err == nil {
		data.Level = level
		data.LevelKnown = true
	}
	return data, nil
}
