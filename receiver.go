// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/pion/logging"
)

// Receiver reads one Space Packet per datagram from a net.PacketConn.
// ReadPacket calls are serialized.
type Receiver struct {
	conn    net.PacketConn
	log     logging.LeveledLogger
	metrics *Metrics

	mu  sync.Mutex
	buf []byte
}

// Listen binds a UDP socket to laddr and returns a Receiver reading from it.
func Listen(network string, laddr *net.UDPAddr, opts ...Option) (*Receiver, error) {
	conn, err := net.ListenUDP(network, laddr)
	if err != nil {
		return nil, err
	}

	r, err := NewReceiver(conn, opts...)
	if err != nil {
		_ = conn.Close()

		return nil, err
	}

	return r, nil
}

// NewReceiver returns a Receiver reading from conn. The Receiver takes
// ownership of conn and closes it on Close.
func NewReceiver(conn net.PacketConn, opts ...Option) (*Receiver, error) {
	if conn == nil {
		return nil, errNilConn
	}

	cfg, err := buildTransportConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Receiver{
		conn:    conn,
		log:     cfg.loggerFactory.NewLogger(loggerScope),
		metrics: cfg.metrics,
		buf:     make([]byte, cfg.bufferSize),
	}, nil
}

// ReadPacket blocks until a datagram arrives, ctx is done, or the Receiver is
// closed. Only the bytes actually received are decoded: a datagram shorter
// than a header returns a *TruncatedHeaderError and one shorter than its
// declared length a *TruncatedPayloadError. The source address is returned
// whenever a datagram was read, even if it could not be decoded.
func (r *Receiver) ReadPacket(ctx context.Context) (*Packet, net.Addr, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	deadline, _ := ctx.Deadline()
	if err := r.conn.SetReadDeadline(deadline); err != nil {
		return nil, nil, err
	}

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = r.conn.SetReadDeadline(time.Now())
		close(fired)
	})
	defer func() {
		if !stop() {
			<-fired
		}
	}()

	n, raddr, err := r.conn.ReadFrom(r.buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		// The socket deadline can expire just before the context's timer fires.
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() && !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, nil, context.DeadlineExceeded
		}

		return nil, nil, err
	}
	r.metrics.observeReceived(n)

	p := &Packet{}
	if err := p.Unmarshal(r.buf[:n]); err != nil {
		r.log.Warnf("dropping %d byte datagram from %s: %v", n, raddr, err)
		r.metrics.observeDecodeError(err)

		return nil, raddr, err
	}

	if extra := n - p.Header.PacketLength(); extra > 0 {
		r.log.Debugf("ignoring %d bytes after packet from %s", extra, raddr)
	}
	r.log.Tracef("received %s packet apid=%d seq=%d (%d bytes) from %s",
		p.Header.Type, p.Header.APID, p.Header.SequenceCount, n, raddr)
	r.metrics.observeDecoded(p.Header)

	return p, raddr, nil
}

// Addr returns the local network address.
func (r *Receiver) Addr() net.Addr {
	return r.conn.LocalAddr()
}

// Close closes the underlying connection. Blocked ReadPacket calls return an error.
func (r *Receiver) Close() error {
	return r.conn.Close()
}
