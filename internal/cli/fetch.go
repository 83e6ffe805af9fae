package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/inject"
)

// fetchCommand creates the "fetch" command.
func (c *CLI) fetchCommand() *cobra.Command {
	var pathsOnly bool

	cmd := &cobra.Command{
		Use:   "fetch <group:artifact:version>...",
		Short: "Download artifacts into the cache",
		Long: `Download each artifact into the cache unless it is already there, and print
the local path. Artifacts are processed in order; the first failure stops
the command.`,
		Example: `  depinject fetch org.apache.commons:commons-lang3:3.14.0
  depinject fetch --repo snapshots com.example:lib:2.0.0-SNAPSHOT
  depinject fetch --ext pom com.google.guava:guava:33.0.0-jre`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := c.parseNotations(args)
			if err != nil {
				return err
			}

			store := c.newStore()
			prog := newProgress(c.Logger)
			for _, dep := range deps {
				cached := store.Contains(dep)

				var spinner *Spinner
				if !pathsOnly && !cached {
					spinner = newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Downloading %s", dep.Name()))
					spinner.Start()
				}
				path, err := store.EnsureLocal(cmd.Context(), dep)
				if spinner != nil {
					spinner.Stop()
				}
				if err != nil {
					return err
				}

				if pathsOnly {
					printPlain(path)
					continue
				}
				if cached {
					printSuccess("%s %s", dep.Name(), StyleDim.Render("(cached)"))
				} else {
					printSuccess("%s", dep.Name())
				}
				printFile(path)
			}
			prog.done(fmt.Sprintf("Resolved %d artifacts", len(deps)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pathsOnly, "paths", false, "print only local paths, one per line")
	return cmd
}

// classpathCommand creates the "classpath" command.
func (c *CLI) classpathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classpath <group:artifact:version>...",
		Short: "Resolve artifacts and print them as a search path",
		Long: `Resolve each artifact through the cache and print the local files joined
with the platform list separator, ready to pass to java -cp.`,
		Example: `  java -cp "$(depinject classpath org.apache.commons:commons-lang3:3.14.0)" Main`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := c.parseNotations(args)
			if err != nil {
				return err
			}

			var cp inject.SearchPath
			if err := c.newInjector().InjectDependencies(cmd.Context(), deps, &cp); err != nil {
				return err
			}
			printPlain(cp.String())
			return nil
		},
	}
}

// execCommand creates the "exec" command.
func (c *CLI) execCommand() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "exec <group:artifact:version>... -- <command> [args...]",
		Short: "Run a command with artifacts appended to CLASSPATH",
		Long: `Resolve the artifacts before "--", append them to an environment variable
(CLASSPATH by default), and run the command after "--" with that environment.
Existing entries of the variable are kept in front.`,
		Example: `  depinject exec org.postgresql:postgresql:42.7.1 -- java -jar app.jar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash < 0 || dash == len(args) {
				return fmt.Errorf("missing command after --")
			}
			deps, err := c.parseNotations(args[:dash])
			if err != nil {
				return err
			}

			target := inject.NewEnvTarget(envName)
			if err := c.newInjector().InjectDependencies(cmd.Context(), deps, target); err != nil {
				return err
			}
			c.Logger.Debug("environment prepared", envName, target.Value())

			command := args[dash:]
			child := exec.CommandContext(cmd.Context(), command[0], command[1:]...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			child.Env = os.Environ()
			return child.Run()
		},
	}

	cmd.Flags().StringVar(&envName, "env", "CLASSPATH", "environment variable to append to")
	return cmd
}
