// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package p21

import "bytes"

// Frame validates a raw status response and returns its payload.
//
// The response must start with prefix. The prefix and the trailing two bytes
// (the CRLF terminator, not inspected) are stripped and the remainder must be
// exactly expectedLen bytes long.
func Frame(raw []byte, prefix string, expectedLen int) ([]byte, error) {
	if !bytes.HasPrefix(raw, []byte(prefix)) {
		return nil, &FrameError{Kind: FrameBadPrefix, Prefix: prefix, Raw: raw}
	}

	payload := raw[len(prefix):]
	if len(payload) >= len(CRLF) {
		payload = payload[:len(payload)-len(CRLF)]
	} else {
		payload = payload[:0]
	}

	if len(payload) != expectedLen {
		return nil, &FrameError{Kind: FrameBadLength, Prefix: prefix, Raw: raw, Got: len(payload), Want: expectedLen}
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
