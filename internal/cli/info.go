package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/integrations/maven"
)

// infoCommand creates the "info" command.
func (c *CLI) infoCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "info <group:artifact:version>",
		Short: "Show POM details of an artifact",
		Long: `Fetch the POM that accompanies an artifact and print its name, description,
project URL, and the compile-scope dependencies it declares. Declared
dependencies are shown for reference only; depinject never resolves them.`,
		Example: `  depinject info com.google.guava:guava:33.0.0-jre`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.repository()
			if err != nil {
				return err
			}
			dep, err := dependency.Parse(args[0], dependency.WithRepository(repo))
			if err != nil {
				return err
			}

			client, err := maven.NewClient(metadataTTL)
			if err != nil {
				return err
			}
			spinner := newSpinnerWithContext(cmd.Context(), "Fetching POM...")
			spinner.Start()
			info, err := client.FetchArtifact(cmd.Context(), dep, refresh)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("fetch %s: %w", dep, err)
			}

			fmt.Fprintln(stdout, StyleTitle.Render(info.Coordinate()))
			if info.Name != "" {
				printKeyValue("Name", info.Name)
			}
			if info.Description != "" {
				printKeyValue("Description", strings.Join(strings.Fields(info.Description), " "))
			}
			if info.Packaging != "" {
				printKeyValue("Packaging", info.Packaging)
			}
			if info.ProjectURL != "" {
				printKeyValue("Project", StyleLink.Render(info.ProjectURL))
			}
			printKeyValue("POM", StyleLink.Render(info.URL))
			if len(info.Dependencies) > 0 {
				printKeyValue("Declares", fmt.Sprintf("%d dependencies", len(info.Dependencies)))
				for _, d := range info.Dependencies {
					printDetail("%s", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the metadata cache")
	return cmd
}

// latestCommand creates the "latest" command.
func (c *CLI) latestCommand() *cobra.Command {
	var (
		refresh bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "latest <group:artifact>",
		Short: "Show the newest published versions of an artifact",
		Long: `Read maven-metadata.xml for an artifact and print its release and latest
versions. With --all, every published version is listed in ascending order.`,
		Example: `  depinject latest org.apache.commons:commons-lang3
  depinject latest --all --repo snapshots com.example:lib`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.repository()
			if err != nil {
				return err
			}
			client, err := maven.NewClient(metadataTTL)
			if err != nil {
				return err
			}

			md, err := client.FetchMetadata(cmd.Context(), repo, args[0], refresh)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}

			fmt.Fprintln(stdout, StyleTitle.Render(md.GroupID+":"+md.ArtifactID))
			versions := md.SortedVersions()
			release := md.Release
			if release == "" && len(versions) > 0 {
				release = versions[len(versions)-1]
			}
			printKeyValue("Release", StyleHighlight.Render(release))
			if md.Latest != "" && md.Latest != release {
				printKeyValue("Latest", md.Latest)
			}
			printKeyValue("Versions", fmt.Sprintf("%d", len(versions)))
			if len(versions) == 0 {
				printWarning("No versions published in %s", repo.URL())
			}
			if all {
				for _, v := range versions {
					printDetail("%s", v)
				}
			}
			if release != "" {
				printNextStep("Fetch it", fmt.Sprintf("depinject fetch %s:%s", args[0], release))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the metadata cache")
	cmd.Flags().BoolVar(&all, "all", false, "list every published version")
	return cmd
}
