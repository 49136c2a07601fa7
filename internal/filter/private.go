package filter

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/mdbook-private-chapters/internal/book"
)

// PrivatePrefix marks a chapter file as private.
const PrivatePrefix = "_"

// PrivateFilter removes chapters whose source file name starts with
// PrivatePrefix. Only the given sequence is inspected; sub-items of a
// retained chapter are passed through untouched, private or not.
type PrivateFilter struct{}

// NewPrivateFilter creates a filter that drops private chapters.
func NewPrivateFilter() *PrivateFilter {
	return &PrivateFilter{}
}

// Apply keeps non-chapter items, chapters without a source path, and
// chapters whose file name is not private.
func (f *PrivateFilter) Apply(_ context.Context, items []book.Item) (*Result, error) {
	r := NewResult()

	for _, it := range items {
		if ch := it.Chapter(); ch != nil {
			if p, ok := ch.SourcePath(); ok && IsPrivate(p) {
				r.Excluded = append(r.Excluded, ExcludedItem{
					Item:   it,
					Reason: fmt.Sprintf("private chapter: %s", p),
				})

				continue
			}
		}

		r.Included = append(r.Included, it)
	}

	return r, nil
}

// IsPrivate reports whether the final element of p starts with
// PrivatePrefix. Backslashes count as separators, so Windows paths work too.
func IsPrivate(p string) bool {
	if p == "" {
		return false
	}

	name := path.Base(strings.ReplaceAll(p, `\`, "/"))

	return strings.HasPrefix(name, PrivatePrefix)
}
