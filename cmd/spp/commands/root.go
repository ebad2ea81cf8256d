// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package commands implements the spp command line.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pion/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SPP"

var errUnknownLogLevel = errors.New("unknown log level")

// app carries the settings shared by every subcommand.
type app struct {
	v             *viper.Viper
	loggerFactory *logging.DefaultLoggerFactory
}

// Execute runs the spp root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh spp command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "spp",
		Short: "Build, parse, send and receive CCSDS Space Packets",
		Long: `spp encodes and decodes CCSDS Space Packets (CCSDS 133.0-B-2).

Every flag can also be set from the environment with the SPP_ prefix
(for example SPP_APID=5) or from a config file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", "error", "log level: disabled, error, warn, info, debug or trace")

	root.AddCommand(
		newBuildCmd(a),
		newParseCmd(a),
		newSendCmd(a),
		newRecvCmd(a),
	)

	return root
}

// load resolves flags, environment and config file, highest first.
func (a *app) load(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	level, err := parseLogLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}

	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = level
	factory.Writer = cmd.ErrOrStderr()
	a.loggerFactory = factory

	return nil
}

func parseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("%w: %q", errUnknownLogLevel, s)
	}
}
