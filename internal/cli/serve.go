package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inflate/internal/server"
	"github.com/matzehuels/inflate/pkg/config"
	"github.com/matzehuels/inflate/pkg/observability"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve the solver over HTTP until interrupted.

Routes:
  POST /v1/solve   {"first_cell_height", "layers", "total_height", ...}
  GET  /healthz    liveness and version
  GET  /metrics    Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Server) error {
	metrics := server.NewMetrics()
	observability.SetSolverHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	c.printInfo("Serving on %s", cfg.Addr)
	c.printDetail("Solve timeout: %s", cfg.SolveTimeout)
	return server.New(cfg, loggerFromContext(ctx), metrics).Run(ctx)
}
