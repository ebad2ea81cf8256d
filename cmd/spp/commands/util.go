// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pion/spacepacket"
	"github.com/spf13/cobra"
)

const (
	defaultAPID    = 2
	defaultPayload = "01020304"
)

var (
	errEmptyHex = errors.New("empty hex payload")
	errOddHex   = errors.New("hex payload must have an even number of digits")
)

// decodeHex parses a user supplied payload such as "01020304" or "0xCAFE".
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errEmptyHex
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", errOddHex, s)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload %q: %w", s, err)
	}

	return b, nil
}

// addPacketFlags registers the header fields shared by build and send.
func addPacketFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("payload", defaultPayload, "user data as hex")
	flags.Uint16("apid", defaultAPID, "application process identifier (0-2047)")
	flags.Uint16("seq-count", 0, "packet sequence count (0-16383)")
	flags.String("type", "tc", "packet type: tm or tc")
	flags.String("seq-flags", "unsegmented", "sequence flags: continuation, first, last or unsegmented")
	flags.Bool("sec-header", false, "set the secondary header flag")
}

// packetTemplate holds the resolved packet flags. newPacket stamps a payload
// and sequence count onto it.
type packetTemplate struct {
	packetType    spacepacket.PacketType
	apid          uint16
	seqCount      uint16
	seqFlags      spacepacket.SequenceFlags
	secondary     bool
	payloadString string
}

func (a *app) packetTemplate() (*packetTemplate, error) {
	packetType, err := spacepacket.ParsePacketType(a.v.GetString("type"))
	if err != nil {
		return nil, err
	}
	seqFlags, err := spacepacket.ParseSequenceFlags(a.v.GetString("seq-flags"))
	if err != nil {
		return nil, err
	}

	return &packetTemplate{
		packetType:    packetType,
		apid:          a.v.GetUint16("apid"),
		seqCount:      a.v.GetUint16("seq-count"),
		seqFlags:      seqFlags,
		secondary:     a.v.GetBool("sec-header"),
		payloadString: a.v.GetString("payload"),
	}, nil
}

func (t *packetTemplate) newPacket(seqCount uint16, payload []byte) (*spacepacket.Packet, error) {
	return spacepacket.NewPacket(t.packetType, t.apid, seqCount, payload,
		spacepacket.WithSequenceFlags(t.seqFlags),
		spacepacket.WithSecondaryHeader(t.secondary),
	)
}

// printPacket writes a field table followed by the payload in hex.
func printPacket(w io.Writer, p *spacepacket.Packet) {
	h := p.Header

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"Version", strconv.Itoa(int(h.Version))})
	table.Append([]string{"Type", fmt.Sprintf("%s (%d)", h.Type, h.Type)})
	table.Append([]string{"Secondary header", strconv.FormatBool(h.SecondaryHeader)})
	table.Append([]string{"APID", strconv.Itoa(int(h.APID))})
	table.Append([]string{"Sequence flags", fmt.Sprintf("%s (%d)", h.SequenceFlags, h.SequenceFlags)})
	table.Append([]string{"Sequence count", strconv.Itoa(int(h.SequenceCount))})
	table.Append([]string{"Data length", strconv.Itoa(int(h.DataLength))})
	table.Append([]string{"Payload length", strconv.Itoa(len(p.Payload))})
	table.Render()

	fmt.Fprintf(w, "Payload (hex): %s\n", hex.EncodeToString(p.Payload)) //nolint:errcheck
}
