// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Encode a packet and print it as hex",
		Example: `  spp build --apid 1 --payload 01020304
  spp build --type tm --seq-flags first --seq-count 7 --payload cafe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := a.packetTemplate()
			if err != nil {
				return err
			}
			payload, err := decodeHex(tmpl.payloadString)
			if err != nil {
				return err
			}
			p, err := tmpl.newPacket(tmpl.seqCount, payload)
			if err != nil {
				return err
			}
			raw, err := p.Marshal()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(raw))

			return err
		},
	}
	addPacketFlags(cmd)

	return cmd
}
