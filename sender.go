// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"net"

	"github.com/pion/logging"
	"github.com/pion/spacepacket/internal/util"
)

// Sender writes each Space Packet as a single datagram to one remote address.
// Send may be called from multiple goroutines.
type Sender struct {
	conn    net.PacketConn
	raddr   net.Addr
	log     logging.LeveledLogger
	metrics *Metrics
}

// Dial connects a UDP socket to raddr and returns a Sender writing to it.
func Dial(network string, raddr *net.UDPAddr, opts ...Option) (*Sender, error) {
	if raddr == nil {
		return nil, errNilRemoteAddr
	}

	conn, err := net.DialUDP(network, nil, raddr)
	if err != nil {
		return nil, err
	}

	s, err := NewSender(util.FromConn(conn), conn.RemoteAddr(), opts...)
	if err != nil {
		_ = conn.Close()

		return nil, err
	}

	return s, nil
}

// NewSender returns a Sender writing to raddr over conn. The Sender takes
// ownership of conn and closes it on Close.
func NewSender(conn net.PacketConn, raddr net.Addr, opts ...Option) (*Sender, error) {
	if conn == nil {
		return nil, errNilConn
	}
	if raddr == nil {
		return nil, errNilRemoteAddr
	}

	cfg, err := buildTransportConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Sender{
		conn:    conn,
		raddr:   raddr,
		log:     cfg.loggerFactory.NewLogger(loggerScope),
		metrics: cfg.metrics,
	}, nil
}

// Send encodes p and writes it as one datagram. It returns the number of bytes
// written, header included.
func (s *Sender) Send(p *Packet) (int, error) {
	raw, err := s.SendRaw(p)

	return len(raw), err
}

// SendRaw is like Send but returns the encoded datagram that was written.
// On a failed write the returned slice holds the bytes that went out.
func (s *Sender) SendRaw(p *Packet) ([]byte, error) {
	if p == nil {
		return nil, errNilPacket
	}

	raw, err := p.Marshal()
	if err != nil {
		return nil, err
	}

	n, err := s.conn.WriteTo(raw, s.raddr)
	if err != nil {
		return raw[:n], err
	}
	if n != len(raw) {
		return raw[:n], errShortWrite
	}

	s.log.Tracef("sent %s packet apid=%d seq=%d (%d bytes) to %s",
		p.Header.Type, p.Header.APID, p.Header.SequenceCount, n, s.raddr)
	s.metrics.observeSent(p.Header, n)

	return raw, nil
}

// LocalAddr returns the local network address.
func (s *Sender) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// RemoteAddr returns the address packets are sent to.
func (s *Sender) RemoteAddr() net.Addr {
	return s.raddr
}

// Close closes the underlying connection.
func (s *Sender) Close() error {
	return s.conn.Close()
}
