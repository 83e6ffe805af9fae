package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the artifact cache",
	}

	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheListCommand())
	cmd.AddCommand(c.cacheRemoveCommand())
	cmd.AddCommand(c.cacheClearCommand())

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var metadata bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the artifact cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metadata {
				dir, err := httputil.DefaultDir()
				if err != nil {
					return fmt.Errorf("get metadata cache dir: %w", err)
				}
				printPlain(dir)
				return nil
			}
			dir, err := filepath.Abs(c.cacheDir)
			if err != nil {
				return err
			}
			printPlain(dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metadata, "metadata", false, "print the repository metadata cache directory instead")
	return cmd
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cached artifacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.newStore().Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Cache is empty")
				return nil
			}

			var total int64
			for _, e := range entries {
				total += e.Size
				label := e.Dependency.String()
				if ext := e.Dependency.Extension(); ext != "jar" {
					label += " " + StyleDim.Render("("+ext+")")
				}
				printKeyValue(formatSize(e.Size), label)
			}
			printDetail("%d artifacts, %s in %s", len(entries), formatSize(total), c.cacheDir)
			return nil
		},
	}
}

// cacheRemoveCommand creates the "cache rm" subcommand.
func (c *CLI) cacheRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <group:artifact:version>...",
		Aliases: []string{"remove"},
		Short:   "Remove artifacts from the cache",
		Args:    cobra.MinimumNArgs(1),

		ValidArgsFunction: c.completeCached,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := c.parseNotations(args)
			if err != nil {
				return err
			}
			store := c.newStore()
			for _, dep := range deps {
				if err := store.Remove(dep); err != nil {
					return err
				}
				printSuccess("Removed %s", dep.Name())
			}
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var metadata bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metadata {
				return clearMetadataCache()
			}

			if _, err := os.Stat(c.cacheDir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			n, err := c.newStore().Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached artifacts", n)
			printDetail("Directory: %s", c.cacheDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metadata, "metadata", false, "clear the repository metadata cache instead")
	return cmd
}

func clearMetadataCache() error {
	mc, err := httputil.NewCache("", 0)
	if err != nil {
		return fmt.Errorf("open metadata cache: %w", err)
	}
	n, err := mc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("Metadata cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached responses", n)
	printDetail("Directory: %s", mc.Dir())
	return nil
}

// formatSize renders a byte count with a binary unit, e.g. "1.4 MiB".
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
