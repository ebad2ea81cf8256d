// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"errors"
	"fmt"
)

var (
	errNilConn           = errors.New("spacepacket: conn can not be nil")
	errNilRemoteAddr     = errors.New("spacepacket: remote address can not be nil")
	errNilPacket         = errors.New("spacepacket: packet can not be nil")
	errShortWrite        = errors.New("spacepacket: datagram was only partially written")
	errInvalidBufferSize = fmt.Errorf("spacepacket: buffer size must be at least %d bytes", HeaderLength+1)
	errUnknownPacketType = errors.New("spacepacket: unknown packet type")
	errUnknownSeqFlags   = errors.New("spacepacket: unknown sequence flags")
)

// Field names a primary header field, or the payload length a header is derived from.
type Field string

// Header fields that can be out of range.
const (
	FieldVersion       Field = "version"
	FieldPacketType    Field = "packet type"
	FieldAPID          Field = "apid"
	FieldSequenceFlags Field = "sequence flags"
	FieldSequenceCount Field = "sequence count"
	FieldPayloadLength Field = "payload length"
)

// RangeError is returned by the encoder when a value does not fit the bit width
// of its header field. A zero-length payload is reported as a RangeError on
// FieldPayloadLength because its Packet Data Length would be -1.
type RangeError struct {
	Field Field
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("spacepacket: %s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is reports whether target is a *RangeError for the same field. A target with
// an empty Field matches any RangeError.
func (e *RangeError) Is(target error) bool {
	var other *RangeError
	if !errors.As(target, &other) {
		return false
	}

	return other.Field == "" || other.Field == e.Field
}

// TruncatedHeaderError is returned when fewer than HeaderLength bytes are
// available to decode a primary header.
type TruncatedHeaderError struct {
	Length int
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("spacepacket: truncated header: got %d bytes, need %d", e.Length, HeaderLength)
}

// Is reports whether target is a *TruncatedHeaderError.
func (e *TruncatedHeaderError) Is(target error) bool {
	var other *TruncatedHeaderError

	return errors.As(target, &other)
}

// TruncatedPayloadError is returned when fewer user data bytes were received
// than the header declares.
type TruncatedPayloadError struct {
	Declared int
	Received int
}

func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("spacepacket: truncated payload: header declares %d bytes, received %d", e.Declared, e.Received)
}

// Is reports whether target is a *TruncatedPayloadError.
func (e *TruncatedPayloadError) Is(target error) bool {
	var other *TruncatedPayloadError

	return errors.As(target, &other)
}
