package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for depinject.

Bash:
  $ source <(depinject completion bash)

Zsh:
  $ depinject completion zsh > "${fpath[1]}/_depinject"

Fish:
  $ depinject completion fish > ~/.config/fish/completions/depinject.fish

PowerShell:
  PS> depinject completion powershell | Out-String | Invoke-Expression

Commands that take cached artifacts (cache rm) complete their coordinates
from the cache directory.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeCached completes group:artifact:version notations of cached
// artifacts.
func (c *CLI) completeCached(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	entries, err := c.newStore().Entries()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		n := e.Dependency.String()
		if !seen[n] && strings.HasPrefix(n, toComplete) {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
