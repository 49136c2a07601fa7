package cli

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hupe1980/mdbook-private-chapters/internal/book"
	"github.com/hupe1980/mdbook-private-chapters/internal/logging"
	"github.com/hupe1980/mdbook-private-chapters/internal/preprocess"
	"github.com/hupe1980/mdbook-private-chapters/internal/version"
)

// runPreprocess reads a request from stdin, applies the inclusion policy,
// and writes the response to stdout. Nothing is written on failure.
func runPreprocess(cmd *cobra.Command) error {
	req, err := readRequest(cmd)
	if err != nil {
		return err
	}

	res, err := runPolicy(cmd, req)
	if err != nil {
		return err
	}

	if err := book.Encode(cmd.OutOrStdout(), res.Response); err != nil {
		return &ExitError{Code: exitFailure, Err: err}
	}

	return nil
}

func readRequest(cmd *cobra.Command) (*book.Request, error) {
	logger := logging.FromContext(cmd.Context())

	in := cmd.InOrStdin()
	if isTerminal(in) {
		logger.Info("waiting for a book on stdin; this command is normally run by mdbook")
	}

	req, err := book.Decode(in)
	if err != nil {
		return nil, &ExitError{Code: exitFailure, Err: err}
	}

	logger.Debug("request decoded",
		slog.String("form", req.Form().String()),
		slog.String("renderer", req.Context.Renderer),
		slog.String("mdbookVersion", req.Context.MDBookVersion),
		slog.Int("sections", len(req.Book.Sections)),
	)

	return req, nil
}

func runPolicy(cmd *cobra.Command, req *book.Request) (*preprocess.Result, error) {
	res, err := preprocess.Run(cmd.Context(), req, preprocess.Options{
		SupportedRange: version.SupportedMDBook(),
		LookupEnv:      os.LookupEnv,
	})
	if err != nil {
		return nil, &ExitError{Code: exitFailure, Err: err}
	}

	return res, nil
}

type fileLike interface {
	Fd() uintptr
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v interface{}) bool {
	f, ok := v.(fileLike)
	if !ok {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
