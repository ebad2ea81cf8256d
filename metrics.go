// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Decode error kinds used as the "kind" label of Metrics.DecodeErrors.
const (
	decodeErrTruncatedHeader  = "truncated_header"
	decodeErrTruncatedPayload = "truncated_payload"
	decodeErrOther            = "other"
)

// Metrics tracks Space Packet traffic through Senders and Receivers.
//
// All metrics use the spacepacket_ prefix. A nil *Metrics records nothing.
type Metrics struct {
	// PacketsSent counts packets written, by packet type
	PacketsSent *prometheus.CounterVec

	// PacketsReceived counts packets decoded, by packet type
	PacketsReceived *prometheus.CounterVec

	// BytesSent counts datagram bytes written
	BytesSent prometheus.Counter

	// BytesReceived counts bytes read from datagrams, including malformed ones,
	// and from streams read by a Reader
	BytesReceived prometheus.Counter

	// DecodeErrors counts dropped datagrams by kind
	DecodeErrors *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg when it is not nil.
// Panics if registration fails (expected during initialization only).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PacketsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepacket_packets_sent_total",
				Help: "Total Space Packets sent by packet type",
			},
			[]string{"type"},
		),
		PacketsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepacket_packets_received_total",
				Help: "Total Space Packets received and decoded by packet type",
			},
			[]string{"type"},
		),
		BytesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spacepacket_bytes_sent_total",
				Help: "Total datagram bytes sent",
			},
		),
		BytesReceived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spacepacket_bytes_received_total",
				Help: "Total bytes received from datagrams and streams",
			},
		),
		DecodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacepacket_decode_errors_total",
				Help: "Total received datagrams that could not be decoded, by kind",
			},
			[]string{"kind"}, // "truncated_header", "truncated_payload", "other"
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.PacketsSent,
			m.PacketsReceived,
			m.BytesSent,
			m.BytesReceived,
			m.DecodeErrors,
		)
	}

	return m
}

func (m *Metrics) observeSent(h Header, n int) {
	if m == nil {
		return
	}
	m.PacketsSent.WithLabelValues(h.Type.String()).Inc()
	m.BytesSent.Add(float64(n))
}

func (m *Metrics) observeReceived(n int) {
	if m == nil {
		return
	}
	m.BytesReceived.Add(float64(n))
}

func (m *Metrics) observeDecoded(h Header) {
	if m == nil {
		return
	}
	m.PacketsReceived.WithLabelValues(h.Type.String()).Inc()
}

func (m *Metrics) observeDecodeError(err error) {
	if m == nil {
		return
	}

	kind := decodeErrOther
	switch {
	case errors.Is(err, &TruncatedHeaderError{}):
		kind = decodeErrTruncatedHeader
	case errors.Is(err, &TruncatedPayloadError{}):
		kind = decodeErrTruncatedPayload
	}
	m.DecodeErrors.WithLabelValues(kind).Inc()
}
