// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Nelko - Nelko P21 label printer tool
//
// Queries printer status and prints labels over a serial (RFCOMM) link.

package main

import (
	"os"

	"github.com/Thermoquad/nelko/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
