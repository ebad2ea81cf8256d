// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

// Packet is a primary header followed by its user data.
type Packet struct {
	Header  Header
	Payload []byte
}

// NewPacket builds a Version-1 packet around payload. Unless overridden by
// opts, the packet is unsegmented and carries no secondary header.
// The payload slice is referenced, not copied.
func NewPacket(
	packetType PacketType, apid uint16, seqCount uint16, payload []byte, opts ...PacketOption,
) (*Packet, error) {
	cfg := packetConfig{sequenceFlags: Unsegmented}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	h, err := NewHeader(packetType, apid, cfg.sequenceFlags, seqCount, len(payload))
	if err != nil {
		return nil, err
	}
	h.SecondaryHeader = cfg.secondaryHeader

	return &Packet{Header: h, Payload: payload}, nil
}

// Marshal encodes the packet. The Packet Data Length is taken from the
// payload, whatever Header.DataLength holds.
func (p *Packet) Marshal() ([]byte, error) {
	if len(p.Payload) < 1 || len(p.Payload) > MaxPayloadLength {
		return nil, &RangeError{Field: FieldPayloadLength, Value: len(p.Payload), Min: 1, Max: MaxPayloadLength}
	}

	h := p.Header
	h.DataLength = uint16(len(p.Payload) - 1) //nolint:gosec
	head, err := h.Marshal()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(head)+len(p.Payload))
	out = append(out, head...)

	return append(out, p.Payload...), nil
}

// Unmarshal decodes a packet from data, which must hold at least as many user
// data bytes as the header declares. Bytes past the declared packet length are
// ignored. The payload is copied out of data.
func (p *Packet) Unmarshal(data []byte) error {
	h, err := DecodeHeader(data)
	if err != nil {
		return err
	}

	declared, received := h.PayloadLength(), len(data)-HeaderLength
	if received < declared {
		return &TruncatedPayloadError{Declared: declared, Received: received}
	}

	p.Header = h
	p.Payload = append([]byte{}, data[HeaderLength:HeaderLength+declared]...)

	return nil
}

// Split decodes the header of data and returns it with every byte that follows
// it. The declared length is not reconciled with the bytes present: a buffer of
// exactly HeaderLength bytes yields an empty payload. Compare
// Header.PayloadLength with len(payload) to detect truncation.
func Split(data []byte) (Header, []byte, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return Header{}, nil, err
	}

	return h, append([]byte{}, data[HeaderLength:]...), nil
}
