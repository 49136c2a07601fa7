package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/mdbook-private-chapters/internal/config"
	"github.com/hupe1980/mdbook-private-chapters/internal/preview"
	"github.com/hupe1980/mdbook-private-chapters/internal/version"
)

type previewOptions struct {
	// Output format: "diff" (default), "yaml", "json".
	format string
}

func newPreviewCommand() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show which chapters would be removed",
		Long: `Preview reads a preprocessor request on stdin, applies the same policy
as a normal run, and prints a report instead of the filtered book.

Capture a request from mdBook with a throwaway preprocessor, or write one
by hand:

  [{"root": ".", "config": {}, "renderer": "html", "mdbook_version": "0.4.40"},
   {"sections": [...]}]

Formats:
  diff  unified diff of the table of contents (default)
  yaml  kept and excluded items as YAML
  json  kept and excluded items as JSON`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", preview.FormatDiff,
		"output format: "+strings.Join(preview.Formats, ", "))

	return cmd
}

func runPreview(cmd *cobra.Command, opts *previewOptions) error {
	if !slices.Contains(preview.Formats, opts.format) {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("invalid format %q: must be one of %s",
			opts.format, strings.Join(preview.Formats, ", "))}
	}

	req, err := readRequest(cmd)
	if err != nil {
		return err
	}

	res, err := runPolicy(cmd, req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	switch opts.format {
	case preview.FormatYAML:
		err = preview.WriteYAML(w, preview.NewReport(res, version.SupportedMDBook()))
	case preview.FormatJSON:
		err = preview.WriteJSON(w, preview.NewReport(res, version.SupportedMDBook()))
	default:
		diffOpts := preview.DefaultDiffOptions()

		var d *preview.DiffResult

		d, err = preview.ComputeDiff(preview.TOC(req.Book.Sections), preview.TOC(res.Response.Book.Sections), diffOpts)
		if err == nil {
			cfg := config.FromContext(cmd.Context())
			preview.WriteDiff(w, d, !cfg.NoColor && isTerminal(w))
		}
	}

	if err != nil {
		return &ExitError{Code: exitFailure, Err: fmt.Errorf("writing preview: %w", err)}
	}

	return nil
}
