// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pion/spacepacket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newRecvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recv ADDR",
		Short: "Receive packets over UDP and print their fields",
		Example: `  spp recv 0.0.0.0:5000
  spp recv 127.0.0.1:5000 --count 1 --metrics-addr :9090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			laddr, err := net.ResolveUDPAddr("udp", args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			metrics := spacepacket.NewMetrics(reg)

			if addr := a.v.GetString("metrics-addr"); addr != "" {
				srv := serveMetrics(cmd, addr, reg)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			receiver, err := spacepacket.Listen("udp", laddr,
				spacepacket.WithLoggerFactory(a.loggerFactory),
				spacepacket.WithMetrics(metrics),
			)
			if err != nil {
				return err
			}
			defer receiver.Close() //nolint:errcheck

			return receive(ctx, cmd, receiver, a.v.GetInt("count"))
		},
	}
	cmd.Flags().Int("count", 0, "stop after this many packets, 0 for no limit")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func serveMetrics(cmd *cobra.Command, addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cmd.PrintErrf("Metrics server: %v\n", err)
		}
	}()

	return srv
}

func receive(ctx context.Context, cmd *cobra.Command, receiver *spacepacket.Receiver, limit int) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Listening on %s\n", receiver.Addr()) //nolint:errcheck

	for n := 0; limit == 0 || n < limit; {
		p, from, err := receiver.ReadPacket(ctx)
		if ctx.Err() != nil {
			return nil
		}

		var (
			truncatedHeader  *spacepacket.TruncatedHeaderError
			truncatedPayload *spacepacket.TruncatedPayloadError
		)
		switch {
		case errors.As(err, &truncatedHeader), errors.As(err, &truncatedPayload):
			cmd.PrintErrf("Dropped packet from %s: %v\n", from, err)

			continue
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "Received packet from %s\n", from) //nolint:errcheck
		printPacket(out, p)
		n++
	}

	return nil
}
