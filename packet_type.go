// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"fmt"
	"strings"
)

// PacketType is the one bit Packet Type field of the primary header.
type PacketType uint8

// PacketType enums.
const (
	Telemetry   PacketType = 0
	Telecommand PacketType = 1
)

func (t PacketType) String() string {
	switch t {
	case Telemetry:
		return "TM"
	case Telecommand:
		return "TC"
	default:
		return fmt.Sprintf("PacketType(%d)", uint8(t))
	}
}

// ParsePacketType accepts "tm", "telemetry", "0", "tc", "telecommand" or "1",
// case insensitive.
func ParsePacketType(s string) (PacketType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tm", "telemetry", "0":
		return Telemetry, nil
	case "tc", "telecommand", "1":
		return Telecommand, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownPacketType, s)
	}
}
