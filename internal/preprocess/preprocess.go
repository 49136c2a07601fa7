// Package preprocess implements the private-chapters transformation as a
// pure function from request to response. Stream handling lives in the CLI.
package preprocess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/mdbook-private-chapters/internal/book"
	"github.com/hupe1980/mdbook-private-chapters/internal/compat"
	"github.com/hupe1980/mdbook-private-chapters/internal/filter"
	"github.com/hupe1980/mdbook-private-chapters/internal/logging"
	"github.com/hupe1980/mdbook-private-chapters/internal/version"
)

// SupportedRenderers lists the renderers the preprocessor can run for.
var SupportedRenderers = []string{"html", "pdf", "epub"}

// Supports reports whether renderer is one of SupportedRenderers.
func Supports(renderer string) bool {
	for _, r := range SupportedRenderers {
		if r == renderer {
			return true
		}
	}

	return false
}

// Options configures Run.
type Options struct {
	// SupportedRange is the mdBook version constraint this build targets.
	// Defaults to version.SupportedMDBook().
	SupportedRange string

	// LookupEnv reads environment variables. A nil LookupEnv disables the
	// environment override.
	LookupEnv filter.LookupEnvFunc
}

// Result is the outcome of a successful Run.
type Result struct {
	// Response is the request with private chapters removed, ready to encode.
	Response *book.Request

	// ExportPrivate is true when private chapters were kept.
	ExportPrivate bool

	// Excluded lists the removed top-level items.
	Excluded []filter.ExcludedItem

	// Compat is the version check outcome.
	Compat *compat.Result
}

// Run checks the caller's mdBook version and applies the inclusion policy to
// req. A version outside the supported range is logged as a warning and does
// not stop processing; an unparseable version is an error. req is not
// modified.
func Run(ctx context.Context, req *book.Request, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	supported := opts.SupportedRange
	if supported == "" {
		supported = version.SupportedMDBook()
	}

	cr, err := compat.Check(req.Context.MDBookVersion, supported)
	if err != nil {
		return nil, err
	}

	if !cr.Compatible {
		logger.Warn(fmt.Sprintf("the %s plugin was built against version %s of mdbook, but we're being called from version %s",
			version.Name, supported, req.Context.MDBookVersion),
			slog.String("plugin", version.Name),
			slog.String("supported", supported),
			slog.String("mdbook", req.Context.MDBookVersion),
		)
	}

	exportPrivate := filter.ExportPrivate(req.Context.Config, opts.LookupEnv)

	chain := filter.NewChain()
	if !exportPrivate {
		chain = filter.NewChain(filter.NewPrivateFilter())
	}

	fr, err := chain.Apply(ctx, req.Book.Sections)
	if err != nil {
		return nil, fmt.Errorf("filtering chapters: %w", err)
	}

	logger.Debug("applied inclusion policy",
		slog.String("renderer", req.Context.Renderer),
		slog.Bool("exportPrivate", exportPrivate),
		slog.Int("sections", len(req.Book.Sections)),
		slog.Int("excluded", len(fr.Excluded)),
	)

	for _, ex := range fr.Excluded {
		logger.Debug("excluded chapter",
			slog.String("name", ex.Item.Title()),
			slog.String("reason", ex.Reason),
		)
	}

	return &Result{
		Response:      req.WithBook(req.Book.WithSections(fr.Included)),
		ExportPrivate: exportPrivate,
		Excluded:      fr.Excluded,
		Compat:        cr,
	}, nil
}
