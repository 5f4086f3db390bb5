// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Port is an open link to the printer
type Port interface {
	io.ReadWriteCloser
	// SetReadTimeout bounds each Read; a Read that times out returns 0, nil
	SetReadTimeout(t time.Duration) error
}

// Opener opens a fresh Port for a single request/response exchange
type Opener func() (Port, error)

// SerialOpener opens device at BaudRate, 8N1
func SerialOpener(device string) Opener {
	return func() (Port, error) {
		mode := &serial.Mode{
			BaudRate: BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(device, mode)
		if err != nil {
			return nil, err
		}
		return port, nil
	}
}

// Transport performs scoped exchanges with the printer. The port is opened
// for each call and always closed before the call returns. Calls are
// serialized; the protocol allows a single command in flight.
type Transport struct {
	Device string
	Logger *slog.Logger

	open Opener
	mu   sync.Mutex
}

// NewTransport creates a transport using open to reach device
func NewTransport(device string, open Opener) *Transport {
	return &Transport{
		Device: device,
		Logger: slog.Default(),
		open:   open,
	}
}

// NewSerialTransport creates a transport for a local serial device such as
// /dev/rfcomm0
func NewSerialTransport(device string) *Transport {
	return NewTransport(device, SerialOpener(device))
}

// Query sends a text command terminated by CRLF and returns the raw response
// line, terminator included
func (t *Transport) Query(command string) ([]byte, error) {
	return t.exchange([]byte(command+CRLF), 0)
}

// Send writes data unchanged and returns the acknowledgement line
func (t *Transport) Send(data []byte) ([]byte, error) {
	return t.exchange(data, 0)
}

// queryFixed is Query for responses of known size. Payload bytes may contain
// LF, so a line ending before minLen bytes is not treated as complete.
func (t *Transport) queryFixed(command string, minLen int) ([]byte, error) {
	return t.exchange([]byte(command+CRLF), minLen)
}

func (t *Transport) exchange(data []byte, minLen int) (resp []byte, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	port, err := t.open()
	if err != nil {
		return nil, &TransportError{Op: "open", Device: t.Device, Err: err}
	}
	defer func() {
		if cerr := port.Close(); cerr != nil && err == nil {
			err = &TransportError{Op: "close", Device: t.Device, Err: cerr}
		}
	}()

	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		return nil, &TransportError{Op: "configure", Device: t.Device, Err: err}
	}

	t.logger().Debug("tx", "device", t.Device, "bytes", len(data))
	if err := writeAll(port, data); err != nil {
		return nil, &TransportError{Op: "write", Device: t.Device, Err: err}
	}

	resp, err = readLine(port, minLen)
	if err != nil {
		return nil, &TransportError{Op: "read", Device: t.Device, Err: err}
	}
	t.logger().Debug("rx", "device", t.Device, "hex", fmt.Sprintf("%x", resp))
	return resp, nil
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}

// readLine reads until LF (at or beyond minLen bytes) or until a read times
// out. A timeout with nothing received is ErrTimeout; a timeout after partial
// data returns what arrived and leaves validation to the framer.
func readLine(r io.Reader, minLen int) ([]byte, error) {
	var line []byte
	buf := make([]byte, 64)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			start := len(line)
			line = append(line, buf[:n]...)
			from := start
			if minLen > 0 && from < minLen-1 {
				from = minLen - 1
			}
			if from < len(line) {
				if idx := bytes.IndexByte(line[from:], '\n'); idx >= 0 {
					return line[:from+idx+1], nil
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) == 0 {
					return nil, io.ErrUnexpectedEOF
				}
				return line, nil
			}
			return nil, err
		}

		if n == 0 {
			if len(line) == 0 {
				return nil, ErrTimeout
			}
			return line, nil
		}
	}
}
