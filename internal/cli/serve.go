package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/s7db/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz       liveness check
  POST /v1/generate   definition in, S7 source out
  POST /v1/inspect    definition in, JSON summary out

The request body format is taken from ?format=json|yaml|toml or the
Content-Type header and defaults to JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("listen") {
				listen = c.settings().Server.Listen
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return server.New(listen, runner, loggerFromContext(ctx),
				server.WithDefaults(c.settings().Defaults)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: server.listen from the configuration)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the source cache")

	return cmd
}
