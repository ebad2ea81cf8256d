// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Command spp builds, parses, sends and receives CCSDS Space Packets.
package main

import (
	"fmt"
	"os"

	"github.com/pion/spacepacket/cmd/spp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err) //nolint:errcheck
		os.Exit(1)
	}
}
