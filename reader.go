// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"errors"
	"io"

	"github.com/pion/logging"
)

// Reader splits a byte stream of back-to-back Space Packets, such as a
// recorded packet file, into packets.
type Reader struct {
	r       io.Reader
	log     logging.LeveledLogger
	metrics *Metrics
	head    [HeaderLength]byte
}

// NewReader returns a Reader reading packets from r. WithBufferSize has no
// effect on a Reader: each payload is allocated at its declared length.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg, err := buildTransportConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader{
		r:       r,
		log:     cfg.loggerFactory.NewLogger(loggerScope),
		metrics: cfg.metrics,
	}, nil
}

// ReadPacket reads the next packet. It returns io.EOF when the stream ends on a
// packet boundary, a *TruncatedHeaderError when it ends inside a header and a
// *TruncatedPayloadError when it ends inside user data.
func (r *Reader) ReadPacket() (*Packet, error) {
	n, err := io.ReadFull(r.r, r.head[:])
	switch {
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		err = &TruncatedHeaderError{Length: n}
		r.metrics.observeDecodeError(err)

		return nil, err
	case err != nil:
		return nil, err
	}

	h, err := DecodeHeader(r.head[:])
	if err != nil {
		return nil, err
	}

	payload := make([]byte, h.PayloadLength())
	n, err = io.ReadFull(r.r, payload)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = &TruncatedPayloadError{Declared: len(payload), Received: n}
		r.log.Warnf("stream ends inside packet apid=%d seq=%d: %v", h.APID, h.SequenceCount, err)
		r.metrics.observeDecodeError(err)

		return nil, err
	case err != nil:
		return nil, err
	}

	r.metrics.observeReceived(h.PacketLength())
	r.metrics.observeDecoded(h)
	r.log.Tracef("read %s packet apid=%d seq=%d (%d bytes)", h.Type, h.APID, h.SequenceCount, h.PacketLength())

	return &Packet{Header: h, Payload: payload}, nil
}
