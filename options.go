// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"github.com/pion/logging"
)

const loggerScope = "spacepacket"

// Option configures a Sender, Receiver or Reader.
type Option func(*transportConfig) error

// transportConfig is shared by every type that moves packets in or out of the process.
type transportConfig struct {
	loggerFactory logging.LoggerFactory
	bufferSize    int
	metrics       *Metrics
}

// applyDefaults applies default values to the config.
func (c *transportConfig) applyDefaults() {
	c.bufferSize = MaxPacketLength
}

func buildTransportConfig(opts ...Option) (*transportConfig, error) {
	cfg := &transportConfig{}
	cfg.applyDefaults()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.loggerFactory == nil {
		cfg.loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return cfg, nil
}

// WithLoggerFactory sets the logger factory for creating loggers.
func WithLoggerFactory(factory logging.LoggerFactory) Option {
	return func(c *transportConfig) error {
		c.loggerFactory = factory

		return nil
	}
}

// WithBufferSize sets the size of the receive buffer. Datagrams longer than
// the buffer are truncated by the socket and reported as TruncatedPayloadError.
// Returns an error if the buffer can not hold a header and one byte of user data.
func WithBufferSize(size int) Option {
	return func(c *transportConfig) error {
		if size < HeaderLength+1 {
			return errInvalidBufferSize
		}
		c.bufferSize = size

		return nil
	}
}

// WithMetrics records traffic and decode failures in m.
func WithMetrics(m *Metrics) Option {
	return func(c *transportConfig) error {
		c.metrics = m

		return nil
	}
}

// PacketOption configures the header NewPacket builds.
type PacketOption func(*packetConfig) error

type packetConfig struct {
	sequenceFlags   SequenceFlags
	secondaryHeader bool
}

// WithSequenceFlags marks the packet as a segment of a larger unit of user data.
// Returns a *RangeError for values outside the two bit field.
func WithSequenceFlags(flags SequenceFlags) PacketOption {
	return func(c *packetConfig) error {
		if flags > Unsegmented {
			return &RangeError{
				Field: FieldSequenceFlags, Value: int(flags), Min: int(Continuation), Max: int(Unsegmented),
			}
		}
		c.sequenceFlags = flags

		return nil
	}
}

// WithSecondaryHeader sets the Secondary Header Flag. The secondary header
// itself is part of the payload and is not interpreted.
func WithSecondaryHeader(present bool) PacketOption {
	return func(c *packetConfig) error {
		c.secondaryHeader = present

		return nil
	}
}
