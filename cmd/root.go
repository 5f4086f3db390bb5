// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Thermoquad/nelko/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	configPath string
	verbose    bool

	// Resolved settings (file, then flags, then defaults)
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nelko",
	Short: "Nelko P21 label printer tool",
	Long: `Nelko - A CLI tool for the Nelko P21 thermal label printer.

Queries printer configuration and battery state and prints images as labels.
The printer is normally reached through a Bluetooth RFCOMM serial device.

Connection modes:
  Serial:    --port /dev/rfcomm0
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the NELKO_PASSWORD
environment variable, or prompted interactively if not set.

Defaults can be stored in ~/.config/nelko/config.yaml (see --config).`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (default /dev/rfcomm0)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket serial bridge URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/nelko/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log raw protocol traffic")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nelko", "config.yaml")
}

// loadSettings merges the config file with command line flags
func loadSettings(cmd *cobra.Command, args []string) error {
	setupLogging()

	path, optional := configPath, false
	if path == "" {
		path, optional = defaultConfigPath(), true
	}

	cfg := config.New()
	if path != "" {
		var err error
		cfg, err = config.Load(path, optional)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Printer.Device = portName
	}
	if flags.Changed("url") {
		cfg.Printer.URL = wsURL
	}
	if flags.Changed("username") {
		cfg.Printer.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		cfg.Printer.NoSSLVerify = wsNoSSLVerify
	}
	applyPrintFlags(cmd, cfg)

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settings = cfg
	return nil
}
