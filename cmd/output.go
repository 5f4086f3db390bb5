// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Thermoquad/nelko/pkg/p21"
	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Output formats for status commands
const (
	formatText = "text"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// statusReport is the machine readable form of the status queries
type statusReport struct {
	Config  *configReport  `yaml:"config,omitempty" cbor:"config,omitempty"`
	Battery *batteryReport `yaml:"battery,omitempty" cbor:"battery,omitempty"`
}

type configReport struct {
	DPI             uint16 `yaml:"dpi" cbor:"dpi"`
	HardwareVersion string `yaml:"hardware_version" cbor:"hardware_version"`
	FirmwareVersion string `yaml:"second_firmware_version" cbor:"second_firmware_version"`
	Timeout         string `yaml:"timeout" cbor:"timeout"`
	TimeoutMinutes  *int   `yaml:"timeout_minutes" cbor:"timeout_minutes"`
	Beep            bool   `yaml:"beep" cbor:"beep"`
}

type batteryReport struct {
	Level    *int  `yaml:"level" cbor:"level"`
	RawLevel uint8 `yaml:"raw_level" cbor:"raw_level"`
	Charging bool  `yaml:"charging" cbor:"charging"`
}

func newConfigReport(c p21.DeviceConfig) *configReport {
	r := &configReport{
		DPI:             c.DPI,
		HardwareVersion: c.HardwareVersion.String(),
		FirmwareVersion: c.FirmwareVersion.String(),
		Timeout:         c.Timeout.String(),
		Beep:            c.Beep,
	}
	if minutes, ok := c.Timeout.Minutes(); ok {
		r.TimeoutMinutes = &minutes
	}
	return r
}

func newBatteryReport(b p21.BatteryData) *batteryReport {
	r := &batteryReport{RawLevel: b.RawLevel, Charging: b.Charging}
	if b.LevelKnown {
		level := b.Level
		r.Level = &level
	}
	return r
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML, formatCBOR:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text, yaml or cbor)", format)
	}
}

// writeReport writes the report in the requested format. Text output keeps
// the labels of the vendor tool so scripts parsing it keep working.
func writeReport(w io.Writer, format string, report statusReport) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case formatCBOR:
		data, err := cbor.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode CBOR: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		var s strings.Builder
		if report.Config != nil {
			s.WriteString(titleStyle.Render("Printer configuration:"))
			s.WriteString("\n")
			s.WriteString(renderConfig(report.Config))
			s.WriteString("\n")
		}
		if report.Battery != nil {
			s.WriteString(titleStyle.Render("Printer battery:"))
			s.WriteString("\n")
			s.WriteString(renderBattery(report.Battery))
			s.WriteString("\n")
		}
		_, err := io.WriteString(w, s.String())
		return err
	}
}

func renderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value) + "\n"
}

func renderConfig(r *configReport) string {
	return renderField("DPI Resolution", fmt.Sprintf("%d", r.DPI)) +
		renderField("Hardware Version", r.HardwareVersion) +
		renderField("Second Firmware Version", r.FirmwareVersion) +
		renderField("Timeout", r.Timeout) +
		renderField("Beep", p21.FormatBeep(r.Beep))
}

func renderBattery(r *batteryReport) string {
	level := warningStyle.Render(fmt.Sprintf("Unknown (0x%02X)", r.RawLevel))
	if r.Level != nil {
		level = valueStyle.Render(fmt.Sprintf("%d%%", *r.Level))
	}

	s := labelStyle.Render("Battery Level:") + " " + level + "\n" +
		renderField("Charging", p21.FormatCharging(r.Charging))
	if r.Charging {
		s += warningStyle.Render("Unplug the printer to get a current battery reading.") + "\n"
	}
	return s
}
