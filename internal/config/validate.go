// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package config

import (
	"fmt"
	"math"
	"net/url"

	"github.com/Thermoquad/nelko/pkg/p21"
)

// Validate checks ranges the print command builder does not check itself.
// It does not mutate the configuration.
func Validate(cfg *Config) error {
	if cfg.Printer.Device == "" && cfg.Printer.URL == "" {
		return fmt.Errorf("printer: either device or url must be set")
	}

	if cfg.Printer.URL != "" {
		u, err := url.Parse(cfg.Printer.URL)
		if err != nil {
			return fmt.Errorf("printer: invalid url: %v", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("printer: unsupported url scheme %q (use ws:// or wss://)", u.Scheme)
		}
	}

	if cfg.Print.Density < p21.DensityMin || cfg.Print.Density > p21.DensityMax {
		return fmt.Errorf("print: density %d out of range (%d-%d)",
			cfg.Print.Density, p21.DensityMin, p21.DensityMax)
	}

	if cfg.Print.Copies < 1 || cfg.Print.Copies > math.MaxUint16 {
		return fmt.Errorf("print: copies %d out of range (1-%d)", cfg.Print.Copies, math.MaxUint16)
	}

	if _, err := p21.ParseMode(cfg.Print.Mode); err != nil {
		return fmt.Errorf("print: %v", err)
	}

	return nil
}
