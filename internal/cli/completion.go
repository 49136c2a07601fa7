package cli

import (
	"github.com/spf13/cobra"
)

func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mdbook-private-chapters.

Bash:
  $ source <(mdbook-private-chapters completion bash)

Zsh:
  $ mdbook-private-chapters completion zsh > "${fpath[1]}/_mdbook-private-chapters"

Fish:
  $ mdbook-private-chapters completion fish > ~/.config/fish/completions/mdbook-private-chapters.fish

PowerShell:
  PS> mdbook-private-chapters completion powershell | Out-String | Invoke-Expression
`,
		PersistentPreRunE: skipConfig,
		Args:              usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}

			return nil
		},
	}
}
