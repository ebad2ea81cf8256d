// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package util contains small helpers used across the repo
package util

import (
	"net"
)

// connectedPacketConn lets a connected net.Conn, such as the result of
// net.DialUDP, be used where a net.PacketConn is expected. Addresses passed to
// WriteTo are ignored: datagrams always go to the connected peer.
type connectedPacketConn struct {
	net.Conn
}

// FromConn converts a net.Conn into a net.PacketConn.
func FromConn(conn net.Conn) net.PacketConn {
	return &connectedPacketConn{conn}
}

// ReadFrom reads one datagram and reports the connected peer as its source.
func (c *connectedPacketConn) ReadFrom(b []byte) (int, net.Addr, error) {
	n, err := c.Read(b)

	return n, c.RemoteAddr(), err
}

// WriteTo writes b to the connected peer.
func (c *connectedPacketConn) WriteTo(b []byte, _ net.Addr) (int, error) {
	return c.Write(b)
}
