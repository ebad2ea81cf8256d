// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build gofuzz
// +build gofuzz

package spacepacket

import (
	"bytes"
	"fmt"
)

// Fuzz decodes data as a packet and checks that encoding it again reproduces
// the declared bytes exactly.
func Fuzz(data []byte) int {
	var p Packet
	if err := p.Unmarshal(data); err != nil {
		return 0
	}
	buf, err := p.Marshal()
	if err != nil {
		// Non Version-1 packets decode but can not be encoded.
		return 0
	}
	if !bytes.Equal(buf, data[:p.Header.PacketLength()]) {
		panic(fmt.Sprintf("packet mismatch: %x != %x", buf, data[:p.Header.PacketLength()])) // nolint
	}
	var np Packet
	if err = np.Unmarshal(buf); err != nil {
		panic(err) // nolint
	}
	if np.Header != p.Header {
		panic(fmt.Sprintf("header mismatch: %+v != %+v", np.Header, p.Header)) // nolint
	}

	return 1
}
