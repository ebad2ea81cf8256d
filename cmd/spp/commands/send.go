// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"net"
	"strings"

	"github.com/pion/spacepacket"
	"github.com/spf13/cobra"
)

const exitCommand = "exit"

func newSendCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send ADDR",
		Short: "Send packets over UDP",
		Long: `Send one packet to ADDR (host:port), or with --interactive read one hex
payload per line from stdin and send each as the next packet in sequence
until "exit" or end of input.`,
		Example: `  spp send 127.0.0.1:5000 --apid 1 --payload 01020304
  spp send 127.0.0.1:5000 --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raddr, err := net.ResolveUDPAddr("udp", args[0])
			if err != nil {
				return err
			}
			tmpl, err := a.packetTemplate()
			if err != nil {
				return err
			}

			sender, err := spacepacket.Dial("udp", raddr, spacepacket.WithLoggerFactory(a.loggerFactory))
			if err != nil {
				return err
			}
			defer sender.Close() //nolint:errcheck

			if a.v.GetBool("interactive") {
				return sendInteractive(cmd, sender, tmpl)
			}

			payload, err := decodeHex(tmpl.payloadString)
			if err != nil {
				return err
			}

			return sendOne(cmd, sender, tmpl, tmpl.seqCount, payload)
		},
	}
	addPacketFlags(cmd)
	cmd.Flags().BoolP("interactive", "i", false, "read payloads from stdin, one hex string per line")

	return cmd
}

func sendOne(cmd *cobra.Command, sender *spacepacket.Sender, tmpl *packetTemplate, seq uint16, payload []byte) error {
	p, err := tmpl.newPacket(seq, payload)
	if err != nil {
		return err
	}
	raw, err := sender.SendRaw(p)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Space packet (hex): %s\nPacket sent to %s (seq %d)\n",
		hex.EncodeToString(raw), sender.RemoteAddr(), seq)

	return err
}

// sendInteractive sends one packet per valid stdin line. Bad lines are
// reported and skipped without consuming a sequence count.
func sendInteractive(cmd *cobra.Command, sender *spacepacket.Sender, tmpl *packetTemplate) error {
	out := cmd.OutOrStdout()
	seq := tmpl.seqCount

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 4*spacepacket.MaxPayloadLength)
	for {
		fmt.Fprintf(out, "Enter payload hex (or '%s' to quit): ", exitCommand) //nolint:errcheck
		if !scanner.Scan() {
			fmt.Fprintln(out) //nolint:errcheck

			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitCommand) {
			return nil
		}
		if line == "" {
			continue
		}

		payload, err := decodeHex(line)
		if err != nil {
			cmd.PrintErrf("Invalid payload: %v\n", err)

			continue
		}
		if err := sendOne(cmd, sender, tmpl, seq, payload); err != nil {
			cmd.PrintErrf("Send failed: %v\n", err)

			continue
		}
		seq = spacepacket.NextSequenceCount(seq)
	}
}
