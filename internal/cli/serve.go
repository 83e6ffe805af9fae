package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/mirror"
	"github.com/matzehuels/depinject/pkg/observability"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cache as a repository mirror",
		Long: `Run an HTTP server that answers repository-layout requests under /maven2
from the cache, downloading misses from --repo first. Point a build tool at
http://<addr>/maven2 to use it.`,
		Example: `  depinject serve --addr :8080
  depinject serve --repo https://repo.example.com/releases --atomic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.repository()
			if err != nil {
				return err
			}

			opts := []mirror.Option{mirror.WithUpstream(repo), mirror.WithLogger(c.Logger)}
			if metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				observability.Register(observability.NewPrometheusHooks(reg))
				opts = append(opts, mirror.WithMetrics(reg))
			}

			printInfo("Mirroring %s", StyleLink.Render(repo.URL()))
			printDetail("Repository URL: http://%s%s", displayAddr(addr), mirror.RepositoryPrefix)
			return mirror.New(c.newStore(), opts...).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
