// Package filter implements the inclusion policy of the preprocessor. It
// decides whether private chapters are exported and, when they are not,
// removes them from the book's top-level sections.
//
// The package is built around the [Filter] interface and [Chain] type, which
// allow composable, ordered filter application over book items.
package filter
