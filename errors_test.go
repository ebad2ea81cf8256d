// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package spacepacket

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStrings(t *testing.T) {
	cases := []struct {
		err error
		str string
	}{
		{
			&RangeError{Field: FieldAPID, Value: 2048, Min: 0, Max: MaxAPID},
			"spacepacket: apid 2048 out of range [0, 2047]",
		},
		{
			&RangeError{Field: FieldPayloadLength, Value: 0, Min: 1, Max: MaxPayloadLength},
			"spacepacket: payload length 0 out of range [1, 65536]",
		},
		{
			&TruncatedHeaderError{Length: 5},
			"spacepacket: truncated header: got 5 bytes, need 6",
		},
		{
			&TruncatedPayloadError{Declared: 4, Received: 0},
			"spacepacket: truncated payload: header declares 4 bytes, received 0",
		},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%T", c.err), func(t *testing.T) {
			assert.EqualError(t, c.err, c.str)
		})
	}
}

func TestErrorIs(t *testing.T) {
	apid := &RangeError{Field: FieldAPID, Value: 4000, Max: MaxAPID}
	wrapped := fmt.Errorf("building packet: %w", apid)

	assert.ErrorIs(t, wrapped, &RangeError{})
	assert.ErrorIs(t, wrapped, &RangeError{Field: FieldAPID})
	assert.NotErrorIs(t, wrapped, &RangeError{Field: FieldSequenceCount})
	assert.NotErrorIs(t, wrapped, &TruncatedHeaderError{})

	header := fmt.Errorf("reading: %w", &TruncatedHeaderError{Length: 2})
	assert.ErrorIs(t, header, &TruncatedHeaderError{})
	assert.NotErrorIs(t, header, &TruncatedPayloadError{})

	payload := fmt.Errorf("reading: %w", &TruncatedPayloadError{Declared: 2})
	assert.ErrorIs(t, payload, &TruncatedPayloadError{})
	assert.NotErrorIs(t, payload, &RangeError{})

	var target *TruncatedPayloadError
	assert.True(t, errors.As(payload, &target))
	assert.Equal(t, 2, target.Declared)
}
