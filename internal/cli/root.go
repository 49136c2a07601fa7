// Package cli implements the cobra command tree for mdbook-private-chapters.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/mdbook-private-chapters/internal/config"
	"github.com/hupe1980/mdbook-private-chapters/internal/logging"
	"github.com/hupe1980/mdbook-private-chapters/internal/version"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// ExitError wraps an error with a specific process exit code. An ExitError
// without Err ends the process silently with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	return execute(NewRootCommand())
}

// execute runs cmd and reports a failure on its error stream as
// "Error: <message>".
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	code := exitFailure

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code

		if exitErr.Err == nil {
			return code
		}
	}

	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)

	if code == exitUsage {
		_, _ = fmt.Fprintf(w, "Run '%s --help' for usage.\n", cmd.Root().CommandPath())
	}

	return code
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &ExitError{Code: exitUsage, Err: err}
		}

		return nil
	}
}

// skipConfig replaces the root PersistentPreRunE for commands that need
// neither configuration nor logging.
func skipConfig(*cobra.Command, []string) error { return nil }

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached. Without a subcommand it runs the preprocessor.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "mdbook-" + version.Name,
		Short: "An mdBook preprocessor that removes chapters whose files begin with an underscore",
		Long: `mdbook-private-chapters is an mdBook preprocessor that removes private
chapters from a book. A chapter is private when the name of its source
file begins with an underscore, e.g. src/_draft.md.

mdBook runs it with the book on stdin and reads the filtered book from
stdout. Private chapters are kept when book.toml sets

  [preprocessor.private-chapters]
  export-private = true

or when MDBOOK_EXPORT_PRIVATE is 1, true, TRUE, yes or YES.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: exitUsage, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreprocess(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .mdbook-private-chapters.yaml)")
	pf.String("log-level", config.LogLevelInfo, "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress warnings")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Err: err}
	})

	cmd.AddCommand(
		newSupportsCommand(),
		newPreviewCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}
