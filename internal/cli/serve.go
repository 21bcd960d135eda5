package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arranger/internal/config"
	"github.com/matzehuels/arranger/pkg/metrics"
	"github.com/matzehuels/arranger/pkg/observability"
	"github.com/matzehuels/arranger/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the layout pass over HTTP:

  POST /v1/arrange   arrange a scene
  POST /v1/route     route a single join
  POST /v1/graph     export a visibility graph
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if redis != "" {
				c.Config.Cache.Backend = config.BackendRedis
				c.Config.Cache.RedisAddr = redis
			}

			reg := metrics.NewRegistry()
			observability.SetPipelineHooks(reg)
			observability.SetCacheHooks(reg)
			observability.SetHTTPHooks(reg)
			defer observability.Reset()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Debug("server config", "cache", c.Config.Cache.Backend, "timeout", c.Config.Server.Timeout.Duration)
			srv := server.New(server.Config{
				Runner:   runner,
				Defaults: c.options(),
				Metrics:  reg,
				Logger:   c.Logger,
				Timeout:  c.Config.Server.Timeout.Duration,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "use the Redis cache at this address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the arrangement cache")
	return cmd
}
