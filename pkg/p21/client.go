// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"fmt"
	"image"
)

// Client issues status queries and print jobs over a Transport
type Client struct {
	t *Transport
}

// NewClient creates a client on top of t
func NewClient(t *Transport) *Client {
	return &Client{t: t}
}

// Config queries CONFIG? and decodes the answer
func (c *Client) Config() (DeviceConfig, error) {
	payload, err := c.status(QueryConfig, PrefixConfig, ConfigPayloadSize)
	if err != nil {
		return DeviceConfig{}, err
	}
	return DecodeConfig(payload)
}

// Battery queries BATTERY? and decodes the answer
func (c *Client) Battery() (BatteryData, error) {
	payload, err := c.status(QueryBattery, PrefixBattery, BatteryPayloadSize)
	if err != nil {
		return BatteryData{}, err
	}
	return DecodeBattery(payload)
}

func (c *Client) status(query, prefix string, size int) ([]byte, error) {
	raw, err := c.t.queryFixed(query, len(prefix)+size+len(CRLF))
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", query, err)
	}
	payload, err := Frame(raw, prefix, size)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", query, err)
	}
	return payload, nil
}

// PrintOptions controls a print job
type PrintOptions struct {
	Mode    Mode
	Density int
	Copies  uint16
	// NoFit sends the image at its own size instead of fitting it to the label
	NoFit bool
}

// Print encodes img and sends it, returning the printer's acknowledgement.
// Nothing is sent if encoding fails.
func (c *Client) Print(img image.Image, opts PrintOptions) ([]byte, error) {
	enc := NewEncoder(opts.Mode)
	enc.Fit = !opts.NoFit

	raster, err := enc.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return c.PrintRaster(raster, opts.Density, opts.Copies)
}

// PrintRaster sends an already encoded raster
func (c *Client) PrintRaster(raster []byte, density int, copies uint16) ([]byte, error) {
	data := BuildPrintCommand(raster, density, copies)
	c.t.logger().Info("sending print job", "bytes", len(data), "density", density, "copies", copies)

	ack, err := c.t.Send(data)
	if err != nil {
		return nil, fmt.Errorf("print failed: %w", err)
	}
	return ack, nil
}
