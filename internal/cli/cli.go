// Package cli implements the depinject command-line interface.
//
// The commands are thin wrappers around the library packages: they parse
// notations into dependencies, resolve them through a cache store, and
// print what happened with lipgloss styling. Logging goes to stderr through
// charmbracelet/log; --verbose switches it to debug level.
//
// # Commands
//
//   - fetch: download artifacts into the cache and print their paths
//   - classpath: resolve artifacts and print them as a search path
//   - exec: resolve artifacts onto CLASSPATH and run a command
//   - install: resolve every dependency listed in depinject.toml
//   - cache: inspect and clean the artifact cache
//   - info, latest: read POMs and version listings from a repository
//   - serve: run a repository mirror backed by the cache
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/buildinfo"
	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/inject"
	"github.com/matzehuels/depinject/pkg/integrations"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depinject"

	// metadataTTL is how long repository metadata responses are cached.
	metadataTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cacheDir string
	repo     string
	ext      string
	timeout  time.Duration
	atomic   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		cacheDir: cache.DefaultRoot,
		repo:     "central",
		ext:      dependency.DefaultExtension,
		timeout:  integrations.DownloadTimeout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "depinject fetches artifacts on demand and puts them on a search path",
		Long: `depinject resolves group:artifact:version coordinates against Maven-layout
repositories, caches each artifact once under a local directory, and attaches
the cached files to a classpath, an environment variable, or a running process.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.cacheDir, "cache-dir", c.cacheDir, "artifact cache root")
	flags.StringVarP(&c.repo, "repo", "r", c.repo, "repository name (central, snapshots) or base URL")
	flags.StringVar(&c.ext, "ext", c.ext, "artifact packaging extension")
	flags.DurationVar(&c.timeout, "timeout", c.timeout, "timeout per artifact download (0 disables)")
	flags.BoolVar(&c.atomic, "atomic", c.atomic, "download through a temporary file and rename on success")

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.classpathCommand())
	root.AddCommand(c.execCommand())
	root.AddCommand(c.installCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.latestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store and Injector Factories
// =============================================================================

// newStore creates the artifact store configured by the global flags.
func (c *CLI) newStore() *cache.Store {
	opts := []cache.StoreOption{cache.WithLogger(c.Logger)}
	if c.atomic {
		opts = append(opts, cache.WithAtomicWrites())
	}
	fetcher := integrations.NewDownloadClient(c.timeout)
	return cache.NewStore(c.cacheDir, fetcher, opts...)
}

// newInjector creates an injector over newStore.
func (c *CLI) newInjector() *inject.Injector {
	return inject.NewInjector(c.newStore(), c.Logger)
}

// repository resolves the --repo flag.
func (c *CLI) repository() (dependency.Repository, error) {
	return dependency.LookupRepository(c.repo)
}

// dependencyOptions returns the construction options implied by the flags.
func (c *CLI) dependencyOptions() ([]dependency.Option, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, err
	}
	return []dependency.Option{
		dependency.WithRepository(repo),
		dependency.WithExtension(c.ext),
	}, nil
}

// parseNotations parses each argument as group:artifact:version.
func (c *CLI) parseNotations(args []string) ([]dependency.Dependency, error) {
	opts, err := c.dependencyOptions()
	if err != nil {
		return nil, err
	}
	deps := make([]dependency.Dependency, 0, len(args))
	for _, arg := range args {
		dep, err := dependency.Parse(arg, opts...)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
