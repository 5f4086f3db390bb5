// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads the optional nelko settings file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither the file nor flags set a value
const (
	DefaultDevice  = "/dev/rfcomm0"
	DefaultDensity = 15
	DefaultCopies  = 1
	DefaultMode    = "1bit"
)

// Config holds printer connection and print job defaults
type Config struct {
	Printer PrinterConfig `yaml:"printer"`
	Print   PrintConfig   `yaml:"print"`
}

// PrinterConfig selects how the printer is reached
type PrinterConfig struct {
	Device string `yaml:"device"`

	// WebSocket serial bridge (optional)
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	NoSSLVerify bool   `yaml:"no_ssl_verify"`
}

// PrintConfig holds print job defaults
type PrintConfig struct {
	Density int    `yaml:"density"`
	Copies  int    `yaml:"copies"`
	Mode    string `yaml:"mode"`
}

// New returns a Config holding the print job defaults. Values read from a
// file or flags are merged over it, so an explicit zero stays zero and is
// rejected by Validate.
func New() *Config {
	return &Config{
		Print: PrintConfig{
			Density: DefaultDensity,
			Copies:  DefaultCopies,
			Mode:    DefaultMode,
		},
	}
}

// Load reads a YAML config file over the defaults from New. A missing file is
// not an error when optional is true; the defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults picks the default serial device when no connection was
// configured. It must be called after flags are merged and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Printer.Device == "" && cfg.Printer.URL == "" {
		cfg.Printer.Device = DefaultDevice
	}
}
