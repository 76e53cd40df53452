package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the evaluation API server",
	Long: `Start the HTTP server exposing the evaluation pipeline.

Endpoints:
  GET  /health              liveness check
  POST /api/v1/evaluations  run a candidate evaluation
  GET  /api/v1/costs        accumulated usage and cost (if enabled)

Examples:
  # Start with config defaults
  quorumhire serve

  # Bind a different address
  quorumhire serve --addr :9090`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (overrides server.addr from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	p, err := buildPipeline(cfg, logger, false)
	if err != nil {
		return err
	}

	opts := []api.ServerOption{api.WithLogger(logger)}
	if p.costs != nil {
		opts = append(opts, api.WithCostTracker(p.costs))
	}
	if cfg.Server.RequestTimeout != "" {
		// Already validated by the config loader.
		if timeout, err := time.ParseDuration(cfg.Server.RequestTimeout); err == nil {
			opts = append(opts, api.WithRequestTimeout(timeout))
		}
	}

	server := api.NewServer(p.summarizer, opts...)

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, addr)
}
