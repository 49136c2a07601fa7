package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/mdbook-private-chapters/internal/preprocess"
)

func newSupportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported by this preprocessor",
		Long: `Supports tells mdBook whether the preprocessor should run for a renderer.
It reads nothing from stdin and prints nothing; the answer is the exit code.

Supported renderers: ` + strings.Join(preprocess.SupportedRenderers, ", ") + `

Exit codes:
  0  Renderer supported
  1  Renderer not supported
  2  Invalid arguments`,
		Args:              usageArgs(cobra.ExactArgs(1)),
		ValidArgs:         preprocess.SupportedRenderers,
		PersistentPreRunE: skipConfig,
		RunE: func(_ *cobra.Command, args []string) error {
			if preprocess.Supports(args[0]) {
				return nil
			}

			return &ExitError{Code: exitFailure}
		},
	}
}
