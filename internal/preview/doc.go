// Package preview renders what the inclusion policy would do to a book
// without producing the preprocessor response: a unified diff of the
// table of contents, or a structured report in YAML or JSON.
package preview
