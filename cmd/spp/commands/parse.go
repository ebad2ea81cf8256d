// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pion/spacepacket"
	"github.com/spf13/cobra"
)

var errParseInput = errors.New("give either a hex packet or --file")

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [HEX]",
		Short: "Decode a packet given as hex, or a file of back-to-back packets",
		Example: `  spp parse 1001c000000301020304
  spp parse --file capture.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := a.v.GetString("file")
			switch {
			case file != "" && len(args) == 0:
				return a.parseFile(cmd, file)
			case file == "" && len(args) == 1:
				raw, err := decodeHex(args[0])
				if err != nil {
					return err
				}
				var p spacepacket.Packet
				if err := p.Unmarshal(raw); err != nil {
					return err
				}
				printPacket(cmd.OutOrStdout(), &p)

				return nil
			default:
				return errParseInput
			}
		},
	}
	cmd.Flags().String("file", "", "read raw packets from a file, - for stdin")

	return cmd
}

func (a *app) parseFile(cmd *cobra.Command, path string) error {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) //nolint:gosec
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		in = f
	}

	r, err := spacepacket.NewReader(in, spacepacket.WithLoggerFactory(a.loggerFactory))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 1; ; i++ {
		p, err := r.ReadPacket()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("packet %d: %w", i, err)
		}
		fmt.Fprintf(out, "Packet %d\n", i) //nolint:errcheck
		printPacket(out, p)
	}
}
