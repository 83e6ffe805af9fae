package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/config"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/inject"
)

// installCommand creates the "install" command.
func (c *CLI) installCommand() *cobra.Command {
	var (
		file string
		tui  bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve every dependency listed in a manifest",
		Long: `Read depinject.toml (or the file given with -f) and resolve its dependencies
in file order. The [cache] table of the manifest supplies defaults for
--cache-dir, --atomic and --timeout; flags given on the command line win.
The first failure stops the install.`,
		Example: `  depinject install
  depinject install -f tools/depinject.toml --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.Load(file)
			if err != nil {
				return err
			}
			c.applyManifest(cmd, m)

			deps, err := m.Resolve()
			if err != nil {
				return err
			}
			if len(deps) == 0 {
				printInfo("No dependencies in %s", file)
				return nil
			}

			injector := c.newInjector()
			var cp inject.SearchPath
			install := func(ctx context.Context, dep dependency.Dependency) (string, error) {
				if err := injector.InjectDependency(ctx, dep, &cp); err != nil {
					return "", err
				}
				return injector.Store().Path(dep), nil
			}

			if tui {
				return runInstallTUI(cmd.Context(), deps, install)
			}

			prog := newProgress(c.Logger)
			for _, dep := range deps {
				path, err := install(cmd.Context(), dep)
				if err != nil {
					printError("%s", dep.Name())
					return err
				}
				printSuccess("%s", dep.Name())
				printFile(path)
			}
			prog.done(fmt.Sprintf("Installed %d artifacts", len(deps)))
			for _, cmdline := range c.classpathCommands(deps) {
				printNextStep("Print the classpath", cmdline)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", config.DefaultFilename, "manifest file")
	cmd.Flags().BoolVar(&tui, "tui", false, "show an interactive progress view")
	return cmd
}

// applyManifest copies [cache] settings into the CLI unless the matching
// flag was set explicitly.
func (c *CLI) applyManifest(cmd *cobra.Command, m *config.Manifest) {
	flags := cmd.Flags()
	if m.Cache.Dir != "" && !flags.Changed("cache-dir") {
		c.cacheDir = m.Cache.Dir
	}
	if m.Cache.Atomic && !flags.Changed("atomic") {
		c.atomic = true
	}
	if m.Cache.Timeout.Duration > 0 && !flags.Changed("timeout") {
		c.timeout = m.Cache.Timeout.Duration
	}
}

// classpathCommands returns the classpath invocations that reproduce deps,
// one per repository and extension pair, in manifest order. Flags are added
// only where they differ from the defaults.
func (c *CLI) classpathCommands(deps []dependency.Dependency) []string {
	type key struct {
		repo dependency.Repository
		ext  string
	}
	var order []key
	groups := make(map[key][]string)
	for _, dep := range deps {
		k := key{dep.Repository(), dep.Extension()}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], dep.String())
	}

	cmds := make([]string, 0, len(order))
	for _, k := range order {
		args := []string{appName}
		if c.cacheDir != cache.DefaultRoot {
			args = append(args, "--cache-dir", shellQuote(c.cacheDir))
		}
		if k.repo != dependency.Central {
			args = append(args, "--repo", shellQuote(k.repo.URL()))
		}
		if k.ext != dependency.DefaultExtension {
			args = append(args, "--ext", shellQuote(k.ext))
		}
		args = append(args, "classpath")
		args = append(args, groups[k]...)
		cmds = append(cmds, strings.Join(args, " "))
	}
	return cmds
}

// shellQuote single-quotes s when it contains characters a POSIX shell
// would interpret.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"$`\\*?[]#~;&|<>(){}!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// runInstallTUI runs install for each dependency under a bubbletea
// progress view.
func runInstallTUI(ctx context.Context, deps []dependency.Dependency, install installFunc) error {
	model := newInstallModel(ctx, deps, install)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	return final.(installModel).err
}
