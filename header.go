// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package spacepacket implements the CCSDS Space Packet primary header
// https://public.ccsds.org/Pubs/133x0b2e1.pdf
package spacepacket

import (
	"golang.org/x/crypto/cryptobyte"
)

const (
	// HeaderLength is the size of the primary header in bytes.
	HeaderLength = 6
	// MaxAPID is the largest Application Process Identifier.
	MaxAPID = 0x7FF
	// IdleAPID is reserved for idle packets.
	IdleAPID = MaxAPID
	// MaxSequenceCount is the largest Packet Sequence Count before it wraps to 0.
	MaxSequenceCount = 0x3FFF
	// MaxPayloadLength is the largest user data field, a Packet Data Length of 0xFFFF.
	MaxPayloadLength = 0x10000
	// MaxPacketLength is the size of the largest Space Packet.
	MaxPacketLength = HeaderLength + MaxPayloadLength

	// Version1 is the Packet Version Number of CCSDS Version-1 packets.
	Version1 = 0

	maxVersion = 0x7

	versionShift     = 13
	typeShift        = 12
	typeBit          = 1 << typeShift
	secondaryHdrBit  = 1 << 11
	apidMask         = MaxAPID
	seqFlagsShift    = 14
	seqCountMask     = MaxSequenceCount
	sequenceCountMod = MaxSequenceCount + 1
)

// Header is the CCSDS Space Packet primary header.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	| Ver |T|S|        APID         |SF |     Sequence Count        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|      Packet Data Length       |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// DataLength holds the number of user data bytes minus one.
type Header struct {
	Version         uint8
	Type            PacketType
	SecondaryHeader bool
	APID            uint16
	SequenceFlags   SequenceFlags
	SequenceCount   uint16
	DataLength      uint16
}

// NewHeader returns the header of a Version-1 packet that carries payloadLength
// bytes of user data. It returns a *RangeError if any value does not fit its field.
func NewHeader(
	packetType PacketType, apid uint16, seqFlags SequenceFlags, seqCount uint16, payloadLength int,
) (Header, error) {
	if payloadLength < 1 || payloadLength > MaxPayloadLength {
		return Header{}, &RangeError{Field: FieldPayloadLength, Value: payloadLength, Min: 1, Max: MaxPayloadLength}
	}

	h := Header{
		Version:       Version1,
		Type:          packetType,
		APID:          apid,
		SequenceFlags: seqFlags,
		SequenceCount: seqCount,
		DataLength:    uint16(payloadLength - 1), //nolint:gosec
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// EncodeHeader packs the primary header of a packet carrying payloadLength
// bytes of user data.
func EncodeHeader(
	packetType PacketType, apid uint16, seqFlags SequenceFlags, seqCount uint16, payloadLength int,
) ([]byte, error) {
	h, err := NewHeader(packetType, apid, seqFlags, seqCount, payloadLength)
	if err != nil {
		return nil, err
	}

	return h.Marshal()
}

// DecodeHeader unpacks the primary header found in the first HeaderLength bytes
// of data. The rest of data is not looked at.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Unmarshal(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

func (h Header) validate() error {
	switch {
	case h.Version != Version1:
		return &RangeError{Field: FieldVersion, Value: int(h.Version), Min: Version1, Max: Version1}
	case h.Type > Telecommand:
		return &RangeError{Field: FieldPacketType, Value: int(h.Type), Min: int(Telemetry), Max: int(Telecommand)}
	case h.APID > MaxAPID:
		return &RangeError{Field: FieldAPID, Value: int(h.APID), Min: 0, Max: MaxAPID}
	case h.SequenceFlags > Unsegmented:
		return &RangeError{
			Field: FieldSequenceFlags, Value: int(h.SequenceFlags), Min: int(Continuation), Max: int(Unsegmented),
		}
	case h.SequenceCount > MaxSequenceCount:
		return &RangeError{Field: FieldSequenceCount, Value: int(h.SequenceCount), Min: 0, Max: MaxSequenceCount}
	}

	return nil
}

// Marshal encodes the header to its 6 byte wire format.
func (h Header) Marshal() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	id := uint16(h.Version)<<versionShift | h.APID
	if h.Type == Telecommand {
		id |= typeBit
	}
	if h.SecondaryHeader {
		id |= secondaryHdrBit
	}

	var b cryptobyte.Builder
	b.AddUint16(id)
	b.AddUint16(uint16(h.SequenceFlags)<<seqFlagsShift | h.SequenceCount)
	b.AddUint16(h.DataLength)

	return b.Bytes()
}

// Unmarshal populates the header from the first HeaderLength bytes of data.
// The Packet Version Number is reported as found, not checked.
func (h *Header) Unmarshal(data []byte) error {
	if len(data) < HeaderLength {
		return &TruncatedHeaderError{Length: len(data)}
	}

	var id, seq, length uint16
	s := cryptobyte.String(data[:HeaderLength])
	if !s.ReadUint16(&id) || !s.ReadUint16(&seq) || !s.ReadUint16(&length) {
		return &TruncatedHeaderError{Length: len(data)}
	}

	*h = Header{
		Version:         uint8(id>>versionShift) & maxVersion,
		Type:            PacketType((id & typeBit) >> typeShift),
		SecondaryHeader: id&secondaryHdrBit != 0,
		APID:            id & apidMask,
		SequenceFlags:   SequenceFlags(seq >> seqFlagsShift),
		SequenceCount:   seq & seqCountMask,
		DataLength:      length,
	}

	return nil
}

// PayloadLength is the number of user data bytes the header declares.
func (h Header) PayloadLength() int {
	return int(h.DataLength) + 1
}

// PacketLength is the size of the whole packet the header declares.
func (h Header) PacketLength() int {
	return HeaderLength + h.PayloadLength()
}

// IsIdle reports whether the header belongs to an idle packet.
func (h Header) IsIdle() bool {
	return h.APID == IdleAPID
}

// NextSequenceCount returns the count that follows c, wrapping after MaxSequenceCount.
func NextSequenceCount(c uint16) uint16 {
	return uint16((int(c) + 1) % sequenceCountMod) //nolint:gosec
}
