// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"fmt"
	"strings"
)

// String returns the human-readable timeout label
func (t Timeout) String() string {
	switch t {
	case TimeoutNever:
		return "Never"
	case Timeout15Min:
		return "15 minutes"
	case Timeout30Min:
		return "30 minutes"
	case Timeout60Min:
		return "60 minutes"
	default:
		return "Unknown"
	}
}

// FormatBeep returns the human-readable beep setting
func FormatBeep(beep bool) string {
	if beep {
		return "On"
	}
	return "Off"
}

// FormatCharging returns the human-readable charging state
func FormatCharging(charging bool) string {
	if charging {
		return "Charging"
	}
	return "Not Charging"
}

// FormatLevel returns the battery level with a percent sign, or Unknown
func (b BatteryData) FormatLevel() string {
	if !b.LevelKnown {
		return fmt.Sprintf("Unknown (0x%02X)", b.RawLevel)
	}
	return fmt.Sprintf("%d%%", b.Level)
}

// String formats the configuration the same way the printer vendor tool does
func (c DeviceConfig) String() string {
	return fmt.Sprintf("DPI Resolution: %d\n"+
		"Hardware Version: %s\n"+
		"Second Firmware Version: %s\n"+
		"Timeout: %s\n"+
		"Beep: %s",
		c.DPI, c.HardwareVersion, c.FirmwareVersion, c.Timeout, FormatBeep(c.Beep))
}

// String formats the battery state. The unplug hint is only shown while
// charging because the level is pinned to 99 then.
func (b BatteryData) String() string {
	s := fmt.Sprintf("Battery Level: %s\nCharging: %s", b.FormatLevel(), FormatCharging(b.Charging))
	if b.Charging {
		s += "\nUnplug the printer to get a current battery reading."
	}
	return s
}

// FormatHex renders bytes as a hex dump, 16 bytes per line
func FormatHex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			sb.WriteString("\n")
		} else if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
