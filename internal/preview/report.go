package preview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/mdbook-private-chapters/internal/book"
	"github.com/hupe1980/mdbook-private-chapters/internal/preprocess"
)

// Supported report formats.
const (
	FormatDiff = "diff"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatDiff, FormatYAML, FormatJSON}

// Entry describes one top-level book item.
type Entry struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Report summarises a preprocessing run.
type Report struct {
	MDBookVersion  string  `json:"mdbookVersion"`
	SupportedRange string  `json:"supportedRange"`
	Compatible     bool    `json:"compatible"`
	ExportPrivate  bool    `json:"exportPrivate"`
	Kept           []Entry `json:"kept"`
	Excluded       []Entry `json:"excluded"`
}

// NewReport builds a report from the outcome of preprocess.Run.
func NewReport(res *preprocess.Result, supportedRange string) *Report {
	r := &Report{
		MDBookVersion:  res.Response.Context.MDBookVersion,
		SupportedRange: supportedRange,
		Compatible:     res.Compat.Compatible,
		ExportPrivate:  res.ExportPrivate,
		Kept:           make([]Entry, 0, len(res.Response.Book.Sections)),
		Excluded:       make([]Entry, 0, len(res.Excluded)),
	}

	for _, it := range res.Response.Book.Sections {
		r.Kept = append(r.Kept, entryFor(it))
	}

	for _, ex := range res.Excluded {
		e := entryFor(ex.Item)
		e.Reason = ex.Reason
		r.Excluded = append(r.Excluded, e)
	}

	return r
}

func entryFor(it book.Item) Entry {
	e := Entry{Kind: it.Kind(), Name: it.Title()}

	if ch := it.Chapter(); ch != nil {
		e.Path, _ = ch.SourcePath()
	}

	return e
}

// TOC renders items as a plain table of contents, one line per item,
// with nested chapters indented.
func TOC(items []book.Item) string {
	var b strings.Builder

	writeTOC(&b, items, 0)

	return b.String()
}

func writeTOC(b *strings.Builder, items []book.Item, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, it := range items {
		switch it.Kind() {
		case book.KindChapter:
			ch := it.Chapter()
			if p, ok := ch.SourcePath(); ok {
				fmt.Fprintf(b, "%s- [%s](%s)\n", indent, ch.Name, p)
			} else {
				fmt.Fprintf(b, "%s- [%s]()\n", indent, ch.Name)
			}

			writeTOC(b, ch.SubItems, depth+1)
		case book.KindSeparator:
			fmt.Fprintf(b, "%s---\n", indent)
		case book.KindPartTitle:
			fmt.Fprintf(b, "%s# %s\n", indent, it.Title())
		default:
			fmt.Fprintf(b, "%s<%s>\n", indent, it.Kind())
		}
	}
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	data, err := sigsyaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("serializing YAML: %w", err)
	}

	_, err = w.Write(data)

	return err
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
