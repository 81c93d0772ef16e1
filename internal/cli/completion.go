package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// inputExtensions are the file types offered when completing a boring
// input argument.
var inputExtensions = []string{"csv", "tsv", "txt", "json"}

// configExtensions are the file types offered for --config.
var configExtensions = []string{"toml", "yaml", "yml"}

// completeInput completes the single <file> argument of render, parse and
// edit with boring inputs.
func completeInput(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return inputExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes --format values, including comma lists.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"svg\tvector diagram",
		"png\traster image (needs rsvg-convert)",
		"pdf\tprintable document (needs rsvg-convert)",
		"json\tscene elements",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeDelimiters completes --delimiter values.
func completeDelimiters(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"comma", "tab", "semicolon", "pipe"}, cobra.ShellCompDirectiveNoFileComp
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a shell completion script for %[1]s.

File arguments complete to boring inputs (.csv, .tsv, .txt, .json) and
--config to .toml and .yaml files.

  bash        source <(%[1]s completion bash)
  zsh         %[1]s completion zsh > "${fpath[1]}/_%[1]s"
  fish        %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish
  powershell  %[1]s completion powershell | Out-String | Invoke-Expression`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
