package filter

import (
	"context"

	"github.com/hupe1980/mdbook-private-chapters/internal/book"
)

// Filter is the interface for all book item filters.
// Filters are stateless: they receive a sequence of items and return a
// result without modifying the input.
type Filter interface {
	// Apply runs the filter on the given items and returns a result.
	Apply(ctx context.Context, items []book.Item) (*Result, error)
}

// ExcludedItem records an item that was removed by a filter.
type ExcludedItem struct {
	// Item is the excluded item.
	Item book.Item
	// Reason is a human-readable explanation for the exclusion.
	Reason string
}

// Result holds the outcome of a filter application.
type Result struct {
	// Included are the items that passed the filter, in input order.
	Included []book.Item
	// Excluded are the items removed by the filter.
	Excluded []ExcludedItem
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{Included: []book.Item{}}
}

// Chain applies multiple filters sequentially, passing the included items
// from each filter as input to the next.
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from the given filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int { return len(c.filters) }

// Apply runs all filters in order, accumulating excluded items. An empty
// chain passes every item through.
func (c *Chain) Apply(ctx context.Context, items []book.Item) (*Result, error) {
	combined := NewResult()
	current := items

	for _, f := range c.filters {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r, err := f.Apply(ctx, current)
		if err != nil {
			return nil, err
		}

		current = r.Included

		combined.Excluded = append(combined.Excluded, r.Excluded...)
	}

	combined.Included = current

	return combined, nil
}
