// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Thermoquad/nelko/pkg/p21"
	"github.com/spf13/cobra"
)

var outputFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show printer configuration (CONFIG?)",
	Long: `Query the printer configuration: DPI, hardware and firmware versions,
auto power-off timeout and beep setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(true, false)
	},
}

var batteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Show printer battery state (BATTERY?)",
	Long: `Query the printer battery level and charging state.

While charging the printer always reports 99%. Unplug it for a real reading.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(false, true)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show printer configuration and battery state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(true, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{configCmd, batteryCmd, statusCmd} {
		c.Flags().StringVarP(&outputFormat, "format", "f", formatText, "Output format: text, yaml or cbor")
		rootCmd.AddCommand(c)
	}
}

func runStatus(wantConfig, wantBattery bool) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}

	transport, connInfo, err := OpenTransport()
	if err != nil {
		return err
	}
	slog.Debug("connection", "info", connInfo)

	client := p21.NewClient(transport)
	var report statusReport

	if wantConfig {
		cfg, err := client.Config()
		if err != nil {
			return reportFailure("configuration query", err)
		}
		if cfg.Timeout == p21.TimeoutUnknown {
			slog.Warn("printer reported an unknown timeout setting")
		}
		report.Config = newConfigReport(cfg)
	}

	if wantBattery {
		battery, err := client.Battery()
		if err != nil {
			return reportFailure("battery query", err)
		}
		if !battery.LevelKnown {
			slog.Warn("printer reported a battery level outside 0-99", "raw", battery.RawLevel)
		}
		report.Battery = newBatteryReport(battery)
	}

	return writeReport(os.Stdout, outputFormat, report)
}

// reportFailure names the failed operation; cobra prints the diagnostic
func reportFailure(what string, err error) error {
	return fmt.Errorf("%s failed: %w", what, err)
}
