package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/internal/demo"
	"github.com/vango-dev/minivue/pkg/live"
	"github.com/vango-dev/minivue/pkg/metrics"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve demos over WebSocket",
		Long: `Start the live server. Each WebSocket connection to /ws/<demo>
mounts a fresh instance of the demo and streams its host
operations; clients send events back to drive it.

Routes:
  GET /healthz     liveness and session count
  GET /ws/{demo}   live session
  GET /metrics     Prometheus metrics

Examples:
  minivue serve
  minivue serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Address()
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			collector := metrics.New(metrics.WithRegistry(reg))

			srv := live.New(resolveDemo,
				live.WithLogger(logger),
				live.WithMetrics(collector, reg),
				live.WithMetricsPath(cfg.Server.MetricsPath),
				live.WithQueueSize(cfg.Server.QueueSize),
			)

			out := cmd.OutOrStdout()
			printBanner(out)
			info(out, "serving on http://%s", addr)
			for _, name := range demo.Names() {
				info(out, "  ws://%s/ws/%s", addr, name)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from minivue.yaml)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to minivue.yaml")

	return cmd
}

func resolveDemo(name string) (*runtime.Component, vdom.Props, error) {
	d, err := demo.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	return d.Root, d.Props, nil
}
