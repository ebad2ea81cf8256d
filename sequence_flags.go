// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"fmt"
	"strings"
)

// SequenceFlags is the two bit field that tells whether a packet carries a
// segment of a larger unit of user data.
type SequenceFlags uint8

// SequenceFlags enums.
const (
	Continuation SequenceFlags = 0
	FirstSegment SequenceFlags = 1
	LastSegment  SequenceFlags = 2
	Unsegmented  SequenceFlags = 3
)

func (f SequenceFlags) String() string {
	switch f {
	case Continuation:
		return "Continuation"
	case FirstSegment:
		return "FirstSegment"
	case LastSegment:
		return "LastSegment"
	case Unsegmented:
		return "Unsegmented"
	default:
		return fmt.Sprintf("SequenceFlags(%d)", uint8(f))
	}
}

// ParseSequenceFlags accepts the flag names (case insensitive, with or
// without a dash) or their numeric value 0-3.
func ParseSequenceFlags(s string) (SequenceFlags, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "continuation", "0":
		return Continuation, nil
	case "firstsegment", "first", "1":
		return FirstSegment, nil
	case "lastsegment", "last", "2":
		return LastSegment, nil
	case "unsegmented", "3":
		return Unsegmented, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownSeqFlags, s)
	}
}
